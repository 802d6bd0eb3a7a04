package settlement

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// ErrUnsupportedVersion is returned for records newer or older than this
// build understands
var ErrUnsupportedVersion = errors.New("settlement: unsupported record version")

// oldest record layout still readable; version 1 predates the QST method flag
const minRecordVersion = 1

// VersionError carries the version of a record that could not be read
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnsupportedVersion, e.Version)
}

func (e *VersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// CheckVersion rejects record versions this build cannot read
func CheckVersion(version int) error {
	if version < minRecordVersion || version > entity.CurrentRecordVersion {
		return &VersionError{Version: version}
	}
	return nil
}

// Record is the replayable state of a subcheck. Besides the inputs it keeps
// each payment's resolved value and the open tab accumulator as last
// computed; the remaining totals are rebuilt by a pass after import.
type Record struct {
	Version          int              `json:"version"`
	Number           int              `json:"number"`
	Status           enum.CheckStatus `json:"status"`
	OrderType        enum.OrderType   `json:"order_type"`
	TaxExempt        string           `json:"tax_exempt,omitempty"`
	DeliveryCharge   int64            `json:"delivery_charge"`
	NewQSTMethod     bool             `json:"new_qst_method"`
	OpenTabRemainder int64            `json:"open_tab_remainder,omitempty"`
	Orders           []RecordOrder    `json:"orders"`
	Payments         []RecordPayment  `json:"payments"`
}

type RecordOrder struct {
	Name               string             `json:"name"`
	Family             string             `json:"family,omitempty"`
	Category           enum.SalesCategory `json:"category"`
	SalesGroup         enum.SalesGroup    `json:"sales_group"`
	UnitCost           int64              `json:"unit_cost"`
	Count              int64              `json:"count"`
	WeightPriced       bool               `json:"weight_priced,omitempty"`
	NoComp             bool               `json:"no_comp,omitempty"`
	NoEmployeeDiscount bool               `json:"no_employee_discount,omitempty"`
	NoDiscount         bool               `json:"no_discount,omitempty"`
	Untaxed            bool               `json:"untaxed,omitempty"`
	Comped             bool               `json:"comped,omitempty"`
	Reduced            bool               `json:"reduced,omitempty"`
	ReducedCost        int64              `json:"reduced_cost,omitempty"`
	Qualifier          enum.Qualifier     `json:"qualifier"`
	Status             enum.OrderStatus   `json:"status"`
	Modifiers          []RecordOrder      `json:"modifiers,omitempty"`
}

type RecordPayment struct {
	Tender         enum.TenderType `json:"tender"`
	TenderID       *uuid.UUID      `json:"tender_id,omitempty"`
	Amount         int64           `json:"amount"`
	IsPercent      bool            `json:"is_percent,omitempty"`
	NoRevenue      bool            `json:"no_revenue,omitempty"`
	NoTax          bool            `json:"no_tax,omitempty"`
	CoverTax       bool            `json:"cover_tax,omitempty"`
	NoRestrictions bool            `json:"no_restrictions,omitempty"`
	Final          bool            `json:"final,omitempty"`
	ApplyEach      bool            `json:"apply_each,omitempty"`
	OpenTab        bool            `json:"open_tab,omitempty"`
	Value          int64           `json:"value,omitempty"`
	ItemMatch      string          `json:"item_match,omitempty"`
	FamilyMatch    string          `json:"family_match,omitempty"`
	DrawerNo       int             `json:"drawer_no,omitempty"`
	EmployeeID     *uuid.UUID      `json:"employee_id,omitempty"`
}

// EncodeRecord serializes the replayable state of sc at the current version.
// Synthetic payments are left out.
func EncodeRecord(sc *entity.SubCheck) ([]byte, error) {
	if sc == nil {
		return nil, ErrMissingSubCheck
	}
	rec := Record{
		Version:          entity.CurrentRecordVersion,
		Number:           sc.Number,
		Status:           sc.Status,
		OrderType:        sc.OrderType,
		TaxExempt:        sc.TaxExempt,
		DeliveryCharge:   sc.DeliveryCharge,
		NewQSTMethod:     sc.NewQSTMethod,
		OpenTabRemainder: sc.OpenTabRemainder,
		Orders:           make([]RecordOrder, 0, len(sc.Orders)),
		Payments:         make([]RecordPayment, 0, len(sc.Payments)),
	}
	for i := range sc.Orders {
		rec.Orders = append(rec.Orders, toRecordOrder(&sc.Orders[i]))
	}
	for _, p := range sc.Payments {
		if p.Synthetic {
			continue
		}
		rec.Payments = append(rec.Payments, RecordPayment{
			Tender:         p.Tender,
			TenderID:       p.TenderID,
			Amount:         p.Amount,
			IsPercent:      p.IsPercent,
			NoRevenue:      p.NoRevenue,
			NoTax:          p.NoTax,
			CoverTax:       p.CoverTax,
			NoRestrictions: p.NoRestrictions,
			Final:          p.Final,
			ApplyEach:      p.ApplyEach,
			OpenTab:        p.OpenTab,
			Value:          p.Value,
			ItemMatch:      p.ItemMatch,
			FamilyMatch:    p.FamilyMatch,
			DrawerNo:       p.DrawerNo,
			EmployeeID:     p.EmployeeID,
		})
	}
	return json.Marshal(rec)
}

// DecodeRecord parses a record into a fresh subcheck with new ids. Nothing is
// returned when the version is not supported.
func DecodeRecord(data []byte) (*entity.SubCheck, error) {
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("settlement: decode record: %w", err)
	}
	if err := CheckVersion(head.Version); err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("settlement: decode record: %w", err)
	}
	if rec.Version < 2 {
		rec.NewQSTMethod = false
	}

	sc := &entity.SubCheck{
		ID:               uuid.New(),
		Number:           rec.Number,
		Status:           rec.Status,
		OrderType:        rec.OrderType,
		TaxExempt:        rec.TaxExempt,
		DeliveryCharge:   rec.DeliveryCharge,
		NewQSTMethod:     rec.NewQSTMethod,
		OpenTabRemainder: rec.OpenTabRemainder,
		RecordVersion:    entity.CurrentRecordVersion,
	}
	for i, ro := range rec.Orders {
		o := fromRecordOrder(ro, sc.ID)
		o.Position = i
		sc.Orders = append(sc.Orders, o)
	}
	for i, rp := range rec.Payments {
		if !rp.Tender.Valid() {
			return nil, fmt.Errorf("settlement: decode record: unknown tender %d", rp.Tender)
		}
		sc.Payments = append(sc.Payments, entity.Payment{
			ID:             uuid.New(),
			SubCheckID:     sc.ID,
			Position:       i,
			Tender:         rp.Tender,
			TenderID:       rp.TenderID,
			Amount:         rp.Amount,
			IsPercent:      rp.IsPercent,
			NoRevenue:      rp.NoRevenue,
			NoTax:          rp.NoTax,
			CoverTax:       rp.CoverTax,
			NoRestrictions: rp.NoRestrictions,
			Final:          rp.Final,
			ApplyEach:      rp.ApplyEach,
			OpenTab:        rp.OpenTab,
			Value:          rp.Value,
			ItemMatch:      rp.ItemMatch,
			FamilyMatch:    rp.FamilyMatch,
			DrawerNo:       rp.DrawerNo,
			EmployeeID:     rp.EmployeeID,
		})
	}
	return sc, nil
}

func toRecordOrder(o *entity.Order) RecordOrder {
	ro := RecordOrder{
		Name:               o.Name,
		Family:             o.Family,
		Category:           o.Category,
		SalesGroup:         o.SalesGroup,
		UnitCost:           o.UnitCost,
		Count:              o.Count,
		WeightPriced:       o.WeightPriced,
		NoComp:             o.NoComp,
		NoEmployeeDiscount: o.NoEmployeeDiscount,
		NoDiscount:         o.NoDiscount,
		Untaxed:            o.Untaxed,
		Comped:             o.Comped,
		Reduced:            o.Reduced,
		ReducedCost:        o.ReducedCost,
		Qualifier:          o.Qualifier,
		Status:             o.Status,
	}
	for i := range o.Modifiers {
		ro.Modifiers = append(ro.Modifiers, toRecordOrder(&o.Modifiers[i]))
	}
	return ro
}

func fromRecordOrder(ro RecordOrder, subCheckID uuid.UUID) entity.Order {
	o := entity.Order{
		ID:                 uuid.New(),
		SubCheckID:         subCheckID,
		Name:               ro.Name,
		Family:             ro.Family,
		Category:           ro.Category,
		SalesGroup:         ro.SalesGroup,
		UnitCost:           ro.UnitCost,
		Count:              ro.Count,
		WeightPriced:       ro.WeightPriced,
		NoComp:             ro.NoComp,
		NoEmployeeDiscount: ro.NoEmployeeDiscount,
		NoDiscount:         ro.NoDiscount,
		Untaxed:            ro.Untaxed,
		Comped:             ro.Comped,
		Reduced:            ro.Reduced,
		ReducedCost:        ro.ReducedCost,
		Qualifier:          ro.Qualifier,
		Status:             ro.Status,
	}
	for i, rm := range ro.Modifiers {
		m := fromRecordOrder(rm, subCheckID)
		m.Position = i
		parent := o.ID
		m.ParentID = &parent
		o.Modifiers = append(o.Modifiers, m)
	}
	return o
}
