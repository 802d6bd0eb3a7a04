package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment is one tender applied to a subcheck. Amount is what was entered
// (basis points when IsPercent, otherwise cents); Value is what the settlement
// pass resolved it to, always in cents.
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SubCheckID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sub_check_id"`
	Position   int             `gorm:"not null;default:0" json:"position"`
	Tender     enum.TenderType `gorm:"not null;default:0" json:"tender"`
	TenderID   *uuid.UUID      `gorm:"type:uuid" json:"tender_id,omitempty"`
	Amount     int64           `gorm:"not null;default:0" json:"amount"`
	Value      int64           `gorm:"not null;default:0" json:"value"`

	IsPercent      bool `gorm:"default:false" json:"is_percent"`
	NoRevenue      bool `gorm:"default:false" json:"no_revenue"`
	NoTax          bool `gorm:"default:false" json:"no_tax"`
	CoverTax       bool `gorm:"default:false" json:"cover_tax"`
	NoRestrictions bool `gorm:"default:false" json:"no_restrictions"`
	Final          bool `gorm:"default:false" json:"final"`
	ApplyEach      bool `gorm:"default:false" json:"apply_each"`
	OpenTab        bool `gorm:"default:false" json:"open_tab"`
	Synthetic      bool `gorm:"default:false" json:"synthetic"`

	// Apply-each coupon predicate, copied from the coupon definition
	ItemMatch   string `gorm:"size:255" json:"item_match,omitempty"`
	FamilyMatch string `gorm:"size:100" json:"family_match,omitempty"`

	DrawerNo   int        `gorm:"default:0" json:"drawer_no"`
	EmployeeID *uuid.UUID `gorm:"type:uuid" json:"employee_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// IsApplyOnceCoupon reports whether the payment is a whole-check coupon
func (p *Payment) IsApplyOnceCoupon() bool {
	return p.Tender == enum.TenderCoupon && !p.ApplyEach
}

// IsApplyEachCoupon reports whether the payment is a per-item coupon
func (p *Payment) IsApplyEachCoupon() bool {
	return p.Tender == enum.TenderCoupon && p.ApplyEach
}

// ConsolidationKey groups payments that may be merged into one line
type ConsolidationKey struct {
	Tender         enum.TenderType
	TenderID       uuid.UUID
	IsPercent      bool
	NoRevenue      bool
	NoTax          bool
	CoverTax       bool
	NoRestrictions bool
	Final          bool
	ApplyEach      bool
	OpenTab        bool
	DrawerNo       int
	EmployeeID     uuid.UUID
}

// Key returns the payment's consolidation key
func (p *Payment) Key() ConsolidationKey {
	k := ConsolidationKey{
		Tender:         p.Tender,
		IsPercent:      p.IsPercent,
		NoRevenue:      p.NoRevenue,
		NoTax:          p.NoTax,
		CoverTax:       p.CoverTax,
		NoRestrictions: p.NoRestrictions,
		Final:          p.Final,
		ApplyEach:      p.ApplyEach,
		OpenTab:        p.OpenTab,
		DrawerNo:       p.DrawerNo,
	}
	if p.TenderID != nil {
		k.TenderID = *p.TenderID
	}
	if p.EmployeeID != nil {
		k.EmployeeID = *p.EmployeeID
	}
	return k
}
