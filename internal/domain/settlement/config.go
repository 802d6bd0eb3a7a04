// Package settlement reconciles a subcheck: it costs the ordered items,
// prorates discounts, stacks jurisdiction taxes, applies the rounding policy
// and settles the payment ledger down to a zero-or-positive balance.
//
// Every function in this package is pure. Reconcile works on a copy of the
// subcheck and returns the reconciled copy; callers swap it in.
package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// Structural failures. A pass never fails on amounts; these report a caller
// that did not supply what the pass needs.
var (
	ErrMissingConfig   = errors.New("settlement: tax configuration is required")
	ErrMissingSubCheck = errors.New("settlement: subcheck is required")
	ErrInvalidRate     = errors.New("settlement: tax rate out of range")
)

// Rates are per-jurisdiction tax rates expressed as fractions
type Rates struct {
	Food        decimal.Decimal
	Alcohol     decimal.Decimal
	Room        decimal.Decimal
	Merchandise decimal.Decimal
	GST         decimal.Decimal
	PST         decimal.Decimal
	HST         decimal.Decimal
	QST         decimal.Decimal
	VAT         decimal.Decimal
}

func (r Rates) each() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"food": r.Food, "alcohol": r.Alcohol, "room": r.Room, "merchandise": r.Merchandise,
		"gst": r.GST, "pst": r.PST, "hst": r.HST, "qst": r.QST, "vat": r.VAT,
	}
}

// Config is everything a settlement pass reads besides the subcheck itself
type Config struct {
	Rates               Rates
	Rounding            enum.RoundingPolicy
	TakeoutFoodExempt   bool
	AlcoholDiscountable bool
	// PST bases at or under this many cents are not taxed unless the check is
	// beverage only; zero disables the exemption
	PSTExemptUnder int64

	ChangeForCredit bool
	ChangeForRoom   bool
	ChangeForCheck  bool
	ChangeForGift   bool

	// Tenders whose excess beyond allowed change may be kept as a captured tip
	TipCaptureTenders []enum.TenderType
}

// Validate rejects rates outside [0, 1]
func (c *Config) Validate() error {
	if c == nil {
		return ErrMissingConfig
	}
	one := decimal.NewFromInt(1)
	for name, rate := range c.Rates.each() {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("%w: %s rate %s", ErrInvalidRate, name, rate.String())
		}
	}
	return nil
}

// ConfigFromSettings converts the stored tax settings row into a pass config
func ConfigFromSettings(s *entity.TaxSettings) (*Config, error) {
	if s == nil {
		return nil, ErrMissingConfig
	}
	cfg := &Config{
		Rates: Rates{
			Food:        s.FoodRate,
			Alcohol:     s.AlcoholRate,
			Room:        s.RoomRate,
			Merchandise: s.MerchandiseRate,
			GST:         s.GSTRate,
			PST:         s.PSTRate,
			HST:         s.HSTRate,
			QST:         s.QSTRate,
			VAT:         s.VATRate,
		},
		Rounding:            s.Rounding,
		TakeoutFoodExempt:   s.TakeoutFoodExempt,
		AlcoholDiscountable: s.AlcoholDiscountable,
		PSTExemptUnder:      s.PSTExemptUnder,
		ChangeForCredit:     s.ChangeForCredit,
		ChangeForRoom:       s.ChangeForRoom,
		ChangeForCheck:      s.ChangeForCheck,
		ChangeForGift:       s.ChangeForGift,
		TipCaptureTenders:   s.TipTenders(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// allowsChange reports whether excess tendered with t may be handed back
func (c *Config) allowsChange(t enum.TenderType) bool {
	switch t {
	case enum.TenderCash:
		return true
	case enum.TenderCreditCard, enum.TenderDebitCard, enum.TenderChargeCard:
		return c.ChangeForCredit
	case enum.TenderChargeRoom:
		return c.ChangeForRoom
	case enum.TenderCheck:
		return c.ChangeForCheck
	case enum.TenderGiftCertificate:
		return c.ChangeForGift
	}
	return false
}

// capturesTip reports whether excess tendered with t may become a tip
func (c *Config) capturesTip(t enum.TenderType) bool {
	for _, tt := range c.TipCaptureTenders {
		if tt == t {
			return true
		}
	}
	return false
}
