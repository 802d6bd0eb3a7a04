package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TenderType is the kind of a payment applied to a subcheck
type TenderType int

const (
	TenderCash            TenderType = 0
	TenderCheck           TenderType = 1
	TenderChargeCard      TenderType = 2
	TenderCreditCard      TenderType = 3
	TenderDebitCard       TenderType = 4
	TenderGiftCertificate TenderType = 5
	TenderAccount         TenderType = 6
	TenderChargeRoom      TenderType = 7
	TenderDiscount        TenderType = 8
	TenderCoupon          TenderType = 9
	TenderComp            TenderType = 10
	TenderEmployeeMeal    TenderType = 11
	TenderCapturedTip     TenderType = 12
	TenderChargedTip      TenderType = 13
	TenderGratuity        TenderType = 14
	TenderOverage         TenderType = 15
	TenderChange          TenderType = 16
	TenderMoneyLost       TenderType = 17
)

var tenderTypeNames = []string{
	"Cash", "Check", "ChargeCard", "CreditCard", "DebitCard", "GiftCertificate",
	"Account", "ChargeRoom", "Discount", "Coupon", "Comp", "EmployeeMeal",
	"CapturedTip", "ChargedTip", "Gratuity", "Overage", "Change", "MoneyLost",
}

func (t TenderType) String() string {
	return nameOf(tenderTypeNames, int(t), "Cash")
}

// Valid reports whether t is a known tender
func (t TenderType) Valid() bool {
	return t >= TenderCash && t <= TenderMoneyLost
}

// IsBlanket reports whether the tender is a whole-check markdown that excludes
// the other blanket kinds (comp, employee meal, discount)
func (t TenderType) IsBlanket() bool {
	return t == TenderComp || t == TenderEmployeeMeal || t == TenderDiscount
}

// IsMarkdown reports whether the tender reduces what is owed through the
// discount resolver rather than by tendering money
func (t TenderType) IsMarkdown() bool {
	return t.IsBlanket() || t == TenderCoupon
}

// IsTip reports whether the tender is a tip or gratuity line
func (t TenderType) IsTip() bool {
	return t == TenderCapturedTip || t == TenderChargedTip || t == TenderGratuity
}

// Unique reports whether at most one payment of this exact kind may exist
func (t TenderType) Unique() bool {
	return t.IsTip()
}

// Priority orders payments for display, highest first
func (t TenderType) Priority() int {
	switch {
	case t.IsMarkdown():
		return 20
	case t == TenderGratuity:
		return 10
	}
	return 0
}

func (t TenderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TenderType) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, tenderTypeNames)
	if err != nil {
		return err
	}
	*t = TenderType(i)
	return nil
}

func (t TenderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TenderType) Scan(value interface{}) error {
	*t = TenderType(scanEnum(value))
	return nil
}
