package settlement

import (
	"strings"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

const maxPercent = 10000

func clampPercent(bp int64) int64 {
	switch {
	case bp < 0:
		return 0
	case bp > maxPercent:
		return maxPercent
	}
	return bp
}

// Eligible reports whether the markdown p may reduce order o. An order
// already at a reduced price takes no further markdown; reductions made by
// apply-each coupons during the pass are tracked by the caller.
func Eligible(o *entity.Order, p *entity.Payment, cfg *Config) bool {
	if o.IsVoided() || o.Comped || o.Reduced {
		return false
	}
	if p.NoRestrictions {
		return true
	}
	switch p.Tender {
	case enum.TenderComp:
		if o.NoComp {
			return false
		}
	case enum.TenderEmployeeMeal:
		if o.NoEmployeeDiscount {
			return false
		}
	case enum.TenderDiscount, enum.TenderCoupon:
		if o.NoDiscount {
			return false
		}
	}
	if o.TaxCategory() == enum.SalesCategoryAlcohol && !cfg.AlcoholDiscountable {
		return false
	}
	return true
}

// Matches reports whether an apply-each coupon's predicate selects the order
func Matches(o *entity.Order, p *entity.Payment) bool {
	if p.ItemMatch != "" && strings.EqualFold(strings.TrimSpace(o.Name), strings.TrimSpace(p.ItemMatch)) {
		return true
	}
	if p.FamilyMatch != "" && strings.EqualFold(strings.TrimSpace(o.Family), strings.TrimSpace(p.FamilyMatch)) {
		return true
	}
	return false
}

// revenue is what an order still has left to discount
func revenue(o *entity.Order) int64 {
	return nonNegative(o.TotalCost - o.TotalComp)
}

// ApplyEach runs one apply-each coupon over the top-level orders. Orders it
// reduces are added to reduced and skipped by later coupons and the blanket
// markdown. The result is the reduction per category.
func ApplyEach(orders []entity.Order, p *entity.Payment, cfg *Config, reduced map[uuid.UUID]bool) entity.CategoryAmounts {
	var cut entity.CategoryAmounts
	for i := range orders {
		o := &orders[i]
		if reduced[o.ID] || !Matches(o, p) || !Eligible(o, p, cfg) {
			continue
		}
		avail := revenue(o)
		if avail == 0 {
			continue
		}
		var take int64
		if p.IsPercent {
			take = percentOf(avail, clampPercent(p.Amount))
		} else {
			units := o.Count
			if o.WeightPriced || units < 1 {
				units = 1
			}
			take = min(nonNegative(p.Amount)*units, avail)
		}
		if take == 0 {
			continue
		}
		reduced[o.ID] = true
		cut.Add(o.TaxCategory(), take)
	}
	return cut
}

// EligibleRevenue sums, per category, the revenue a blanket markdown may take
func EligibleRevenue(orders []entity.Order, p *entity.Payment, cfg *Config, reduced map[uuid.UUID]bool) entity.CategoryAmounts {
	var rev entity.CategoryAmounts
	for i := range orders {
		o := &orders[i]
		if reduced[o.ID] || !o.TaxCategory().Discountable() || !Eligible(o, p, cfg) {
			continue
		}
		rev.Add(o.TaxCategory(), revenue(o))
	}
	return rev
}

// Prorate spreads a blanket markdown over eligible revenue. Percentage
// markdowns take the same share of every category; fixed ones fill food,
// then alcohol, room and merchandise until the amount runs out. No category
// is taken below zero and the sum of the result is the markdown's value.
func Prorate(rev entity.CategoryAmounts, p *entity.Payment) entity.CategoryAmounts {
	var cut entity.CategoryAmounts
	if p.IsPercent {
		bp := clampPercent(p.Amount)
		for _, c := range enum.DiscountOrder {
			cut.Set(c, percentOf(nonNegative(rev.Get(c)), bp))
		}
		return cut
	}

	remaining := nonNegative(p.Amount)
	for _, c := range enum.DiscountOrder {
		if remaining == 0 {
			break
		}
		take := min(remaining, nonNegative(rev.Get(c)))
		cut.Set(c, take)
		remaining -= take
	}
	return cut
}

// activeBlanket returns the whole-check markdown the pass applies. When a
// blanket and an apply-once coupon are both on the ledger the newest wins
// and the rest resolve to nothing.
func activeBlanket(payments []entity.Payment) *entity.Payment {
	var active *entity.Payment
	for i := range payments {
		p := &payments[i]
		if p.Tender.IsBlanket() || p.IsApplyOnceCoupon() {
			if active == nil || !p.CreatedAt.Before(active.CreatedAt) {
				active = p
			}
		}
	}
	return active
}
