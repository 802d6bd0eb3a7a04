package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

func tenders(payments []entity.Payment) []enum.TenderType {
	out := make([]enum.TenderType, len(payments))
	for i := range payments {
		out[i] = payments[i].Tender
	}
	return out
}

func TestAddPaymentSecondCompReplacesFirst(t *testing.T) {
	first := pay(enum.TenderComp, 500)
	second := pay(enum.TenderComp, 700)

	ledger := AddPayment(nil, first)
	ledger = AddPayment(ledger, second)

	require.Len(t, ledger, 1)
	assert.Equal(t, second.ID, ledger[0].ID)
}

func TestAddPaymentMutualExclusion(t *testing.T) {
	tests := []struct {
		name     string
		existing []entity.Payment
		incoming entity.Payment
		want     []enum.TenderType
	}{
		{
			name:     "discount replaces comp",
			existing: []entity.Payment{pay(enum.TenderComp, 100)},
			incoming: pay(enum.TenderDiscount, 100),
			want:     []enum.TenderType{enum.TenderDiscount},
		},
		{
			name:     "employee meal replaces discount",
			existing: []entity.Payment{pay(enum.TenderDiscount, 100)},
			incoming: pay(enum.TenderEmployeeMeal, 0),
			want:     []enum.TenderType{enum.TenderEmployeeMeal},
		},
		{
			name:     "apply-once coupon replaces apply-once coupon",
			existing: []entity.Payment{pay(enum.TenderCoupon, 100)},
			incoming: pay(enum.TenderCoupon, 200),
			want:     []enum.TenderType{enum.TenderCoupon},
		},
		{
			name: "apply-each coupons stack",
			existing: []entity.Payment{func() entity.Payment {
				p := pay(enum.TenderCoupon, 100)
				p.ApplyEach = true
				return p
			}()},
			incoming: func() entity.Payment {
				p := pay(enum.TenderCoupon, 100)
				p.ApplyEach = true
				return p
			}(),
			want: []enum.TenderType{enum.TenderCoupon, enum.TenderCoupon},
		},
		{
			name:     "gratuity replaces gratuity",
			existing: []entity.Payment{pay(enum.TenderGratuity, 1800)},
			incoming: pay(enum.TenderGratuity, 2000),
			want:     []enum.TenderType{enum.TenderGratuity},
		},
		{
			name:     "cash payments accumulate",
			existing: []entity.Payment{pay(enum.TenderCash, 100)},
			incoming: pay(enum.TenderCash, 200),
			want:     []enum.TenderType{enum.TenderCash, enum.TenderCash},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ledger []entity.Payment
			for _, p := range tt.existing {
				ledger = AddPayment(ledger, p)
			}
			ledger = AddPayment(ledger, tt.incoming)
			assert.Equal(t, tt.want, tenders(ledger))
		})
	}
}

func TestAddPaymentOrdersByPriority(t *testing.T) {
	var ledger []entity.Payment
	ledger = AddPayment(ledger, pay(enum.TenderCash, 1000))
	ledger = AddPayment(ledger, pay(enum.TenderGratuity, 300))
	ledger = AddPayment(ledger, pay(enum.TenderCreditCard, 500))
	ledger = AddPayment(ledger, pay(enum.TenderDiscount, 200))

	assert.Equal(t, []enum.TenderType{
		enum.TenderDiscount, enum.TenderGratuity, enum.TenderCash, enum.TenderCreditCard,
	}, tenders(ledger))
	for i := range ledger {
		assert.Equal(t, i, ledger[i].Position)
	}
}

func TestAddPaymentDoesNotMutateInput(t *testing.T) {
	ledger := AddPayment(nil, pay(enum.TenderComp, 100))
	before := ledger[0].ID
	_ = AddPayment(ledger, pay(enum.TenderComp, 200))
	assert.Equal(t, before, ledger[0].ID)
}

func TestRemovePayment(t *testing.T) {
	cash := pay(enum.TenderCash, 100)
	card := pay(enum.TenderCreditCard, 200)
	ledger := AddPayment(AddPayment(nil, cash), card)

	out, ok := RemovePayment(ledger, cash.ID)
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, card.ID, out[0].ID)
	assert.Equal(t, 0, out[0].Position)

	_, ok = RemovePayment(ledger, uuid.New())
	assert.False(t, ok)
}

func TestConsolidate(t *testing.T) {
	drawer := func(p entity.Payment, n int) entity.Payment {
		p.DrawerNo = n
		p.Value = p.Amount
		return p
	}
	ledger := []entity.Payment{
		drawer(pay(enum.TenderCash, 1000), 1),
		drawer(pay(enum.TenderCreditCard, 500), 1),
		drawer(pay(enum.TenderCash, 250), 1),
		drawer(pay(enum.TenderCash, 300), 2),
	}
	change := pay(enum.TenderChange, 50)
	change.Synthetic = true
	ledger = append(ledger, change)

	out := Consolidate(ledger)

	require.Len(t, out, 4)
	assert.Equal(t, int64(1250), out[0].Amount)
	assert.Equal(t, int64(1250), out[0].Value)
	assert.Equal(t, enum.TenderCreditCard, out[1].Tender)
	assert.Equal(t, int64(300), out[2].Amount)
	assert.True(t, out[3].Synthetic)
}

func TestBalanceEffect(t *testing.T) {
	tests := []struct {
		tender    enum.TenderType
		noRevenue bool
		want      Effect
	}{
		{enum.TenderCash, false, EffectReduces},
		{enum.TenderChargeRoom, false, EffectReduces},
		{enum.TenderAccount, false, EffectReduces},
		{enum.TenderCapturedTip, false, EffectIncreases},
		{enum.TenderChange, false, EffectIncreases},
		{enum.TenderOverage, false, EffectIncreases},
		{enum.TenderDiscount, false, EffectNone},
		{enum.TenderComp, true, EffectReduces},
		{enum.TenderGratuity, false, EffectNone},
		{enum.TenderMoneyLost, false, EffectNone},
	}
	for _, tt := range tests {
		t.Run(tt.tender.String(), func(t *testing.T) {
			p := pay(tt.tender, 100)
			p.NoRevenue = tt.noRevenue
			assert.Equal(t, tt.want, BalanceEffect(&p))
		})
	}
}
