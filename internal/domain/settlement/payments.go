package settlement

import (
	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// Effect is how a payment's value moves the balance
type Effect int

const (
	EffectNone Effect = iota
	EffectReduces
	EffectIncreases
)

// BalanceEffect classifies a payment for the balance equation. Markdowns that
// already came out of sales, the gratuity and money lost are part of the
// total and do not move the balance a second time.
func BalanceEffect(p *entity.Payment) Effect {
	switch p.Tender {
	case enum.TenderCash, enum.TenderCheck, enum.TenderChargeCard, enum.TenderCreditCard,
		enum.TenderDebitCard, enum.TenderGiftCertificate, enum.TenderAccount, enum.TenderChargeRoom:
		return EffectReduces
	case enum.TenderCapturedTip, enum.TenderChargedTip, enum.TenderChange, enum.TenderOverage:
		return EffectIncreases
	case enum.TenderDiscount, enum.TenderCoupon, enum.TenderComp, enum.TenderEmployeeMeal:
		if p.NoRevenue {
			return EffectReduces
		}
	}
	return EffectNone
}

// excludes reports whether adding incoming removes existing from the ledger
func excludes(existing, incoming *entity.Payment) bool {
	switch {
	case incoming.Tender.IsBlanket():
		return existing.Tender.IsBlanket()
	case incoming.IsApplyOnceCoupon():
		return existing.IsApplyOnceCoupon()
	case incoming.Tender.Unique():
		return existing.Tender == incoming.Tender
	}
	return false
}

// AddPayment returns a new ledger with p added. Payments p excludes are
// dropped first; p then goes after every payment of equal or higher priority.
func AddPayment(payments []entity.Payment, p entity.Payment) []entity.Payment {
	out := make([]entity.Payment, 0, len(payments)+1)
	for i := range payments {
		if excludes(&payments[i], &p) {
			continue
		}
		out = append(out, payments[i])
	}
	return insertByPriority(out, p)
}

// RemovePayment returns a new ledger without the payment with id
func RemovePayment(payments []entity.Payment, id uuid.UUID) ([]entity.Payment, bool) {
	out := make([]entity.Payment, 0, len(payments))
	found := false
	for _, p := range payments {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	renumber(out)
	return out, found
}

// Consolidate merges payments sharing tender, flags, drawer and employee into
// one line with summed amount and value. Synthetic lines are left alone.
func Consolidate(payments []entity.Payment) []entity.Payment {
	out := make([]entity.Payment, 0, len(payments))
	index := make(map[entity.ConsolidationKey]int)
	for _, p := range payments {
		if p.Synthetic {
			out = append(out, p)
			continue
		}
		k := p.Key()
		if at, ok := index[k]; ok {
			out[at].Amount += p.Amount
			out[at].Value += p.Value
			continue
		}
		index[k] = len(out)
		out = append(out, p)
	}
	renumber(out)
	return out
}

func insertByPriority(payments []entity.Payment, p entity.Payment) []entity.Payment {
	at := len(payments)
	for i := range payments {
		if payments[i].Tender.Priority() < p.Tender.Priority() {
			at = i
			break
		}
	}
	payments = append(payments, entity.Payment{})
	copy(payments[at+1:], payments[at:])
	payments[at] = p
	renumber(payments)
	return payments
}

func renumber(payments []entity.Payment) {
	for i := range payments {
		payments[i].Position = i
	}
}

func withoutSynthetic(payments []entity.Payment) []entity.Payment {
	out := make([]entity.Payment, 0, len(payments))
	for _, p := range payments {
		if !p.Synthetic {
			out = append(out, p)
		}
	}
	return out
}
