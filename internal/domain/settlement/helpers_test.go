package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func untaxedConfig() *Config {
	return &Config{}
}

func item(name string, cat enum.SalesCategory, cost int64) entity.Order {
	return entity.Order{
		ID:       uuid.New(),
		Name:     name,
		Category: cat,
		UnitCost: cost,
		Count:    1,
	}
}

func pay(t enum.TenderType, amount int64) entity.Payment {
	return entity.Payment{ID: uuid.New(), Tender: t, Amount: amount}
}

func subCheck(orders []entity.Order, payments ...entity.Payment) *entity.SubCheck {
	sc := &entity.SubCheck{ID: uuid.New(), Orders: orders}
	for _, p := range payments {
		sc.Payments = AddPayment(sc.Payments, p)
	}
	return sc
}

func synthetic(sc *entity.SubCheck, t enum.TenderType) *entity.Payment {
	for i := range sc.Payments {
		if sc.Payments[i].Synthetic && sc.Payments[i].Tender == t {
			return &sc.Payments[i]
		}
	}
	return nil
}

func assertBalanced(t *testing.T, sc *entity.SubCheck) {
	t.Helper()
	var reduces, increases int64
	for i := range sc.Payments {
		switch BalanceEffect(&sc.Payments[i]) {
		case EffectReduces:
			reduces += sc.Payments[i].Value
		case EffectIncreases:
			increases += sc.Payments[i].Value
		}
	}
	assert.Equal(t, sc.TotalCost-reduces+increases+sc.DeliveryCharge, sc.Balance, "balance equation")
	assert.GreaterOrEqual(t, sc.Balance, int64(0))
}
