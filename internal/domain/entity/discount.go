package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DiscountDefinition is a configured discount, coupon, comp, employee meal or
// automatic gratuity that tender entry can apply by id
type DiscountDefinition struct {
	ID     uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name   string          `gorm:"size:255;not null" json:"name"`
	Tender enum.TenderType `gorm:"not null" json:"tender"`
	Amount int64           `gorm:"not null;default:0" json:"amount"` // basis points when IsPercent, else cents

	IsPercent      bool `json:"is_percent"`
	NoRevenue      bool `json:"no_revenue"`
	NoTax          bool `json:"no_tax"`
	CoverTax       bool `json:"cover_tax"`
	NoRestrictions bool `json:"no_restrictions"`
	ApplyEach      bool `json:"apply_each"`

	// Apply-each coupons match orders by item name or menu family
	ItemMatch   string `gorm:"size:255" json:"item_match,omitempty"`
	FamilyMatch string `gorm:"size:100" json:"family_match,omitempty"`

	Active    bool           `json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new definition
func (d *DiscountDefinition) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DiscountDefinition model
func (DiscountDefinition) TableName() string {
	return "discount_definitions"
}

// DefinableTender reports whether definitions may be created for a tender
func DefinableTender(t enum.TenderType) bool {
	return t.IsMarkdown() || t == enum.TenderGratuity
}

// NewPayment builds the payment tender entry applies for this definition
func (d *DiscountDefinition) NewPayment() Payment {
	id := d.ID
	p := Payment{
		Tender:         d.Tender,
		TenderID:       &id,
		Amount:         d.Amount,
		IsPercent:      d.IsPercent,
		NoRevenue:      d.NoRevenue,
		NoTax:          d.NoTax,
		CoverTax:       d.CoverTax,
		NoRestrictions: d.NoRestrictions,
	}
	if d.Tender == enum.TenderCoupon {
		p.ApplyEach = d.ApplyEach
		p.ItemMatch = d.ItemMatch
		p.FamilyMatch = d.FamilyMatch
	}
	return p
}
