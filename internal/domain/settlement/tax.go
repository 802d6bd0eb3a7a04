package settlement

import (
	"github.com/shopspring/decimal"
	"github.com/viewtouch/settle-api/internal/domain/entity"
)

// TaxBase is the taxable revenue handed to the tax calculator, after
// discounts and comps have been taken out
type TaxBase struct {
	entity.CategoryAmounts
	Takeout      bool
	BeverageOnly bool
	NewQSTMethod bool
}

// applyRate rounds rate × amount half away from zero to whole cents
func applyRate(rate decimal.Decimal, amount int64) int64 {
	if amount == 0 || rate.IsZero() {
		return 0
	}
	return rate.Mul(decimal.NewFromInt(amount)).Round(0).IntPart()
}

// percentOf takes basis points of an amount, rounded half away from zero
func percentOf(amount, bp int64) int64 {
	return applyRate(decimal.New(bp, -4), amount)
}

// ComputeTaxes stacks every jurisdiction's tax over the base
func ComputeTaxes(base TaxBase, cfg *Config) entity.TaxBreakdown {
	food := nonNegative(base.Food)
	alcohol := nonNegative(base.Alcohol)
	room := nonNegative(base.Room)
	merchandise := nonNegative(base.Merchandise)
	if cfg.TakeoutFoodExempt && base.Takeout {
		food = 0
	}

	var t entity.TaxBreakdown
	t.Food = applyRate(cfg.Rates.Food, food)
	t.Alcohol = applyRate(cfg.Rates.Alcohol, alcohol)
	t.GST = applyRate(cfg.Rates.GST, food+alcohol)
	t.PST = pstTax(cfg, food, alcohol, base.BeverageOnly)
	t.HST = applyRate(cfg.Rates.HST, food+alcohol)
	if base.NewQSTMethod {
		t.QST = applyRate(cfg.Rates.QST, food+alcohol+t.GST)
	} else {
		t.QST = applyRate(cfg.Rates.QST, food+alcohol)
	}
	t.Room = applyRate(cfg.Rates.Room, room)
	t.Merchandise = applyRate(cfg.Rates.Merchandise, merchandise)
	t.VAT = applyRate(cfg.Rates.VAT, food+alcohol+room+merchandise)
	return t
}

func pstTax(cfg *Config, food, alcohol int64, beverageOnly bool) int64 {
	base := food
	if cfg.Rates.Alcohol.IsZero() {
		base += alcohol
	}
	if cfg.PSTExemptUnder > 0 && !beverageOnly && base <= cfg.PSTExemptUnder {
		return 0
	}
	return applyRate(cfg.Rates.PST, base)
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
