package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CurrentRecordVersion is the newest subcheck record layout this build reads
const CurrentRecordVersion = 2

// Check is a guest check for a table or ticket; it may be split into several
// subchecks that are settled independently
type Check struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CheckNo    string         `gorm:"size:32;unique;not null" json:"check_no"`
	TableLabel string         `gorm:"size:32" json:"table_label"`
	Guests     int            `gorm:"default:1" json:"guests"`
	OrderType  enum.OrderType `gorm:"default:0" json:"order_type"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	SubChecks []SubCheck `gorm:"foreignKey:CheckID" json:"sub_checks,omitempty"`
}

// BeforeCreate generates a UUID before creating a new check
func (c *Check) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Check model
func (Check) TableName() string {
	return "checks"
}

// IsSettled reports whether every subcheck has left the open state
func (c *Check) IsSettled() bool {
	for i := range c.SubChecks {
		if c.SubChecks[i].Status == enum.CheckStatusOpen {
			return false
		}
	}
	return len(c.SubChecks) > 0
}

// CategoryAmounts holds one amount per sales category, in cents
type CategoryAmounts struct {
	Food        int64 `gorm:"default:0" json:"food"`
	Alcohol     int64 `gorm:"default:0" json:"alcohol"`
	Room        int64 `gorm:"default:0" json:"room"`
	Merchandise int64 `gorm:"default:0" json:"merchandise"`
	Untaxed     int64 `gorm:"default:0" json:"untaxed"`
}

// Get returns the amount for a category
func (a CategoryAmounts) Get(c enum.SalesCategory) int64 {
	switch c {
	case enum.SalesCategoryAlcohol:
		return a.Alcohol
	case enum.SalesCategoryRoom:
		return a.Room
	case enum.SalesCategoryMerchandise:
		return a.Merchandise
	case enum.SalesCategoryUntaxed:
		return a.Untaxed
	}
	return a.Food
}

// Set replaces the amount for a category
func (a *CategoryAmounts) Set(c enum.SalesCategory, v int64) {
	switch c {
	case enum.SalesCategoryAlcohol:
		a.Alcohol = v
	case enum.SalesCategoryRoom:
		a.Room = v
	case enum.SalesCategoryMerchandise:
		a.Merchandise = v
	case enum.SalesCategoryUntaxed:
		a.Untaxed = v
	default:
		a.Food = v
	}
}

// Add adds v to the amount for a category
func (a *CategoryAmounts) Add(c enum.SalesCategory, v int64) {
	a.Set(c, a.Get(c)+v)
}

// Sum totals every category
func (a CategoryAmounts) Sum() int64 {
	return a.Food + a.Alcohol + a.Room + a.Merchandise + a.Untaxed
}

// Plus adds b category by category
func (a CategoryAmounts) Plus(b CategoryAmounts) CategoryAmounts {
	return CategoryAmounts{
		Food:        a.Food + b.Food,
		Alcohol:     a.Alcohol + b.Alcohol,
		Room:        a.Room + b.Room,
		Merchandise: a.Merchandise + b.Merchandise,
		Untaxed:     a.Untaxed + b.Untaxed,
	}
}

// Minus subtracts b category by category
func (a CategoryAmounts) Minus(b CategoryAmounts) CategoryAmounts {
	return CategoryAmounts{
		Food:        a.Food - b.Food,
		Alcohol:     a.Alcohol - b.Alcohol,
		Room:        a.Room - b.Room,
		Merchandise: a.Merchandise - b.Merchandise,
		Untaxed:     a.Untaxed - b.Untaxed,
	}
}

// TaxBreakdown holds the tax computed for each jurisdiction, in cents
type TaxBreakdown struct {
	Food        int64 `gorm:"default:0" json:"food"`
	Alcohol     int64 `gorm:"default:0" json:"alcohol"`
	GST         int64 `gorm:"column:gst;default:0" json:"gst"`
	PST         int64 `gorm:"column:pst;default:0" json:"pst"`
	HST         int64 `gorm:"column:hst;default:0" json:"hst"`
	QST         int64 `gorm:"column:qst;default:0" json:"qst"`
	Room        int64 `gorm:"default:0" json:"room"`
	Merchandise int64 `gorm:"default:0" json:"merchandise"`
	VAT         int64 `gorm:"column:vat;default:0" json:"vat"`
}

// Get returns the tax for one jurisdiction
func (t TaxBreakdown) Get(j enum.Jurisdiction) int64 {
	switch j {
	case enum.JurisdictionAlcohol:
		return t.Alcohol
	case enum.JurisdictionGST:
		return t.GST
	case enum.JurisdictionPST:
		return t.PST
	case enum.JurisdictionHST:
		return t.HST
	case enum.JurisdictionQST:
		return t.QST
	case enum.JurisdictionRoom:
		return t.Room
	case enum.JurisdictionMerchandise:
		return t.Merchandise
	case enum.JurisdictionVAT:
		return t.VAT
	}
	return t.Food
}

// Total sums every jurisdiction
func (t TaxBreakdown) Total() int64 {
	var sum int64
	for _, j := range enum.Jurisdictions {
		sum += t.Get(j)
	}
	return sum
}

// SubCheck is the unit of settlement. Orders and Payments are owned by the
// subcheck; the remaining amount fields are recomputed from scratch by every
// settlement pass and never patched incrementally.
type SubCheck struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CheckID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"check_id"`
	Number           int              `gorm:"not null;default:1" json:"number"`
	Status           enum.CheckStatus `gorm:"default:0" json:"status"`
	OrderType        enum.OrderType   `gorm:"default:0" json:"order_type"`
	TaxExempt        string           `gorm:"size:64" json:"tax_exempt,omitempty"`
	DeliveryCharge   int64            `gorm:"default:0" json:"delivery_charge"`
	NewQSTMethod     bool             `gorm:"column:new_qst_method" json:"new_qst_method"`
	OpenTabRemainder int64            `gorm:"default:0" json:"open_tab_remainder"`
	RecordVersion    int              `gorm:"not null;default:2" json:"record_version"`

	RawSales   int64           `gorm:"default:0" json:"raw_sales"`
	Sales      CategoryAmounts `gorm:"embedded;embeddedPrefix:sales_" json:"sales"`
	Comps      CategoryAmounts `gorm:"embedded;embeddedPrefix:comps_" json:"comps"`
	ItemComps  int64           `gorm:"default:0" json:"item_comps"`
	Tax        TaxBreakdown    `gorm:"embedded;embeddedPrefix:tax_" json:"tax"`
	TotalTax   int64           `gorm:"default:0" json:"total_tax"`
	TotalCost  int64           `gorm:"default:0" json:"total_cost"`
	AmountPaid int64           `gorm:"default:0" json:"amount_paid"`
	Balance    int64           `gorm:"default:0" json:"balance"`

	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Orders   []Order   `gorm:"-" json:"orders"`
	Payments []Payment `gorm:"-" json:"payments"`
}

// BeforeCreate generates a UUID before creating a new subcheck
func (s *SubCheck) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.RecordVersion == 0 {
		s.RecordVersion = CurrentRecordVersion
	}
	return nil
}

// TableName returns the table name for the SubCheck model
func (SubCheck) TableName() string {
	return "sub_checks"
}

// IsTaxExempt reports whether a tax exemption id is recorded
func (s *SubCheck) IsTaxExempt() bool {
	return s.TaxExempt != ""
}

// IsOpen reports whether the subcheck still accepts mutations
func (s *SubCheck) IsOpen() bool {
	return s.Status == enum.CheckStatusOpen
}

// FindOrder returns the order or modifier with the given id
func (s *SubCheck) FindOrder(id uuid.UUID) *Order {
	for i := range s.Orders {
		if found := s.Orders[i].Find(id); found != nil {
			return found
		}
	}
	return nil
}

// FindPayment returns the payment with the given id
func (s *SubCheck) FindPayment(id uuid.UUID) *Payment {
	for i := range s.Payments {
		if s.Payments[i].ID == id {
			return &s.Payments[i]
		}
	}
	return nil
}

// PaymentsOf returns the payments of one tender type
func (s *SubCheck) PaymentsOf(t enum.TenderType) []*Payment {
	var out []*Payment
	for i := range s.Payments {
		if s.Payments[i].Tender == t {
			out = append(out, &s.Payments[i])
		}
	}
	return out
}

// Clone returns a deep copy of the subcheck including orders and payments
func (s *SubCheck) Clone() *SubCheck {
	c := *s
	if s.ClosedAt != nil {
		t := *s.ClosedAt
		c.ClosedAt = &t
	}
	if s.Orders != nil {
		c.Orders = make([]Order, len(s.Orders))
		for i := range s.Orders {
			c.Orders[i] = s.Orders[i].Clone()
		}
	}
	if s.Payments != nil {
		c.Payments = make([]Payment, len(s.Payments))
		for i, p := range s.Payments {
			if p.TenderID != nil {
				id := *p.TenderID
				p.TenderID = &id
			}
			if p.EmployeeID != nil {
				id := *p.EmployeeID
				p.EmployeeID = &id
			}
			c.Payments[i] = p
		}
	}
	return &c
}
