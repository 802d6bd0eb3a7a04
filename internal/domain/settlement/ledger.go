package settlement

import (
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// FigureCost recomputes the cached cost fields of an order and its modifiers.
// parentCount multiplies every level below a counted parent; employeeMeal
// switches items with a reduced price over to it.
//
// Modifiers are costed before their parent. A not-wanted qualifier zeroes the
// order's own cost, total and comp but leaves the modifiers' cached values
// alone.
func FigureCost(o *entity.Order, parentCount int64, employeeMeal bool) {
	if o == nil {
		return
	}
	if o.IsVoided() {
		zeroCost(o)
		return
	}

	count := o.Count * parentCount
	price := o.UnitCost
	if o.Reduced || (employeeMeal && o.ReducedCost > 0) {
		price = o.ReducedCost
	}
	cost := price * count
	if o.WeightPriced {
		cost /= 100
	}

	total := cost
	var childComps int64
	for i := range o.Modifiers {
		m := &o.Modifiers[i]
		FigureCost(m, count, employeeMeal)
		total += m.TotalCost
		childComps += m.TotalComp
	}

	o.Cost = cost
	o.TotalCost = total
	if o.Comped {
		o.TotalComp = total
	} else {
		o.TotalComp = childComps
	}

	if o.Qualifier.NotWanted() {
		o.Cost, o.TotalCost, o.TotalComp = 0, 0, 0
	}
}

func zeroCost(o *entity.Order) {
	o.Cost, o.TotalCost, o.TotalComp = 0, 0, 0
	for i := range o.Modifiers {
		zeroCost(&o.Modifiers[i])
	}
}

// ledgerTotals is what the aggregate step hands to the rest of the pass
type ledgerTotals struct {
	raw          int64
	sales        entity.CategoryAmounts
	comps        entity.CategoryAmounts
	itemComps    int64
	beverageOnly bool
}

// aggregate costs every top-level order and rolls the results up by tax
// category. Voided orders contribute nothing.
func aggregate(orders []entity.Order, employeeMeal bool) ledgerTotals {
	var t ledgerTotals
	counted := 0
	beverages := 0
	for i := range orders {
		o := &orders[i]
		FigureCost(o, 1, employeeMeal)
		if o.IsVoided() {
			continue
		}
		cat := o.TaxCategory()
		t.sales.Add(cat, o.TotalCost)
		t.comps.Add(cat, o.TotalComp)
		t.raw += o.TotalCost
		t.itemComps += o.TotalComp

		counted++
		if o.SalesGroup == enum.SalesGroupBeverage {
			beverages++
		}
	}
	t.beverageOnly = counted > 0 && beverages == counted
	return t
}
