package settlement

import (
	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// Reconcile runs a full settlement pass over a copy of sc and returns the
// copy. Synthetic payments from an earlier pass are discarded and rebuilt, so
// reconciling a reconciled subcheck changes nothing.
func Reconcile(sc *entity.SubCheck, cfg *Config) (*entity.SubCheck, error) {
	if sc == nil {
		return nil, ErrMissingSubCheck
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := sc.Clone()
	out.Payments = withoutSynthetic(out.Payments)
	p := &pass{sc: out, cfg: cfg}
	p.aggregate()
	p.prorate()
	p.tax()
	p.gratuity()
	p.round()
	p.balance()
	p.resolveExcess()
	renumber(out.Payments)
	return out, nil
}

type pass struct {
	sc  *entity.SubCheck
	cfg *Config

	ledger ledgerTotals
	// taken out of reported sales
	revenueCut entity.CategoryAmounts
	// taken out of the taxable base
	taxCut entity.CategoryAmounts
	base   TaxBase

	coverID  uuid.UUID
	coverCut entity.CategoryAmounts
}

func (p *pass) payment(id uuid.UUID) *entity.Payment {
	return p.sc.FindPayment(id)
}

func (p *pass) aggregate() {
	sc := p.sc
	for i := range sc.Payments {
		pay := &sc.Payments[i]
		switch {
		case pay.Tender.IsMarkdown(), pay.Tender == enum.TenderGratuity:
			pay.Value = 0
		default:
			pay.Value = pay.Amount
		}
	}

	employeeMeal := len(sc.PaymentsOf(enum.TenderEmployeeMeal)) > 0
	p.ledger = aggregate(sc.Orders, employeeMeal)
	sc.RawSales = p.ledger.raw
	sc.Comps = p.ledger.comps
	sc.ItemComps = p.ledger.itemComps
}

func (p *pass) cut(pay *entity.Payment, cut entity.CategoryAmounts) {
	if pay.NoRevenue {
		return
	}
	p.revenueCut = p.revenueCut.Plus(cut)
	if !pay.NoTax {
		p.taxCut = p.taxCut.Plus(cut)
	}
}

func (p *pass) prorate() {
	sc := p.sc
	reduced := make(map[uuid.UUID]bool)
	for i := range sc.Payments {
		pay := &sc.Payments[i]
		if !pay.IsApplyEachCoupon() {
			continue
		}
		cut := ApplyEach(sc.Orders, pay, p.cfg, reduced)
		pay.Value = cut.Sum()
		p.cut(pay, cut)
	}

	blanket := activeBlanket(sc.Payments)
	if blanket == nil {
		return
	}
	cut := Prorate(EligibleRevenue(sc.Orders, blanket, p.cfg, reduced), blanket)
	blanket.Value = cut.Sum()
	p.cut(blanket, cut)
	if blanket.Tender == enum.TenderComp && blanket.CoverTax && blanket.NoRevenue {
		p.coverID = blanket.ID
		p.coverCut = cut
	}
}

func (p *pass) tax() {
	sc := p.sc
	sc.Sales = p.ledger.sales.Minus(p.revenueCut)
	p.base = TaxBase{
		CategoryAmounts: p.ledger.sales.Minus(p.ledger.comps).Minus(p.taxCut),
		Takeout:         sc.OrderType == enum.OrderTypeTakeout,
		BeverageOnly:    p.ledger.beverageOnly,
		NewQSTMethod:    sc.NewQSTMethod,
	}
	sc.Tax = ComputeTaxes(p.base, p.cfg)
	sc.TotalTax = sc.Tax.Total()
}

func (p *pass) gratuity() {
	for _, g := range p.sc.PaymentsOf(enum.TenderGratuity) {
		if g.IsPercent {
			g.Value = -percentOf(p.sc.RawSales, clampPercent(g.Amount))
		} else {
			g.Value = -nonNegative(g.Amount)
		}
	}
}

// coverTax extends a covering comp by the tax its portion would have carried
func (p *pass) coverTax() {
	if p.coverID == uuid.Nil || p.sc.IsTaxExempt() {
		return
	}
	pay := p.payment(p.coverID)
	if pay == nil {
		return
	}
	without := p.base
	without.CategoryAmounts = p.base.CategoryAmounts.Minus(p.coverCut)
	ext := p.sc.TotalTax - ComputeTaxes(without, p.cfg).Total()
	if !pay.IsPercent {
		ext = min(ext, nonNegative(pay.Amount-pay.Value))
	}
	if ext > 0 {
		pay.Value += ext
	}
}

func (p *pass) round() {
	sc := p.sc
	p.coverTax()

	total := sc.Sales.Sum() - sc.ItemComps
	if !sc.IsTaxExempt() {
		total += sc.TotalTax
	}
	gratuities := sc.PaymentsOf(enum.TenderGratuity)
	for _, g := range gratuities {
		total -= g.Value
	}

	switch p.cfg.Rounding {
	case enum.RoundingDropPennies:
		if rem := total % 5; total > 5 && rem != 0 {
			p.addSynthetic(enum.TenderMoneyLost, rem)
			total -= rem
		}
	case enum.RoundingUpToGratuity:
		if rem := total % 5; len(gratuities) > 0 && total > 0 && rem != 0 {
			add := 5 - rem
			gratuities[0].Value -= add
			total += add
		}
	}
	sc.TotalCost = total
}

func (p *pass) balance() {
	sc := p.sc
	var paid, added, openTab int64
	for i := range sc.Payments {
		pay := &sc.Payments[i]
		switch BalanceEffect(pay) {
		case EffectReduces:
			paid += pay.Value
		case EffectIncreases:
			added += pay.Value
		}
		if pay.OpenTab && !pay.Final {
			openTab += pay.Value
		}
	}
	sc.AmountPaid = paid
	sc.OpenTabRemainder = openTab
	sc.Balance = sc.TotalCost - paid + added + sc.DeliveryCharge
}

// resolveExcess turns an overpayment into change, a captured tip or overage
// so the balance ends at zero
func (p *pass) resolveExcess() {
	sc := p.sc
	if sc.Balance >= 0 {
		return
	}

	var maxChange, maxTip int64
	for i := range sc.Payments {
		pay := &sc.Payments[i]
		if pay.Tender.IsMarkdown() || BalanceEffect(pay) != EffectReduces {
			continue
		}
		switch {
		case p.cfg.allowsChange(pay.Tender):
			maxChange += pay.Value
			maxTip += pay.Value
		case p.cfg.capturesTip(pay.Tender):
			maxTip += pay.Value
		}
	}

	if over := -sc.Balance - maxChange; over > 0 {
		if room := maxTip - maxChange; room > 0 && len(sc.PaymentsOf(enum.TenderCapturedTip)) == 0 {
			tip := min(over, room)
			p.addSynthetic(enum.TenderCapturedTip, tip)
			sc.Balance += tip
			over -= tip
		}
		if over > 0 {
			p.addSynthetic(enum.TenderOverage, over)
			sc.Balance += over
		}
	}
	if sc.Balance < 0 {
		p.addSynthetic(enum.TenderChange, -sc.Balance)
	}
	sc.Balance = 0
}

// addSynthetic appends a pass-generated payment. Its id is derived from the
// subcheck and tender so repeated passes produce the same line.
func (p *pass) addSynthetic(t enum.TenderType, value int64) {
	sc := p.sc
	sc.Payments = insertByPriority(sc.Payments, entity.Payment{
		ID:         uuid.NewSHA1(sc.ID, []byte("synthetic/"+t.String())),
		SubCheckID: sc.ID,
		Tender:     t,
		Amount:     value,
		Value:      value,
		Synthetic:  true,
	})
}
