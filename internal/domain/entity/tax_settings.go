package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"gorm.io/gorm"
)

// TaxSettings is the store's tax and rounding configuration. Rates are
// fractions (0.0825 for 8.25 %). A single active row is read at the start of
// every settlement pass.
type TaxSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreName string         `gorm:"size:255" json:"store_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Jurisdiction rates
	FoodRate        decimal.Decimal `gorm:"type:decimal(9,6);not null" json:"food_rate"`
	AlcoholRate     decimal.Decimal `gorm:"type:decimal(9,6);not null" json:"alcohol_rate"`
	RoomRate        decimal.Decimal `gorm:"type:decimal(9,6);not null" json:"room_rate"`
	MerchandiseRate decimal.Decimal `gorm:"type:decimal(9,6);not null" json:"merchandise_rate"`
	GSTRate         decimal.Decimal `gorm:"column:gst_rate;type:decimal(9,6);not null" json:"gst_rate"`
	PSTRate         decimal.Decimal `gorm:"column:pst_rate;type:decimal(9,6);not null" json:"pst_rate"`
	HSTRate         decimal.Decimal `gorm:"column:hst_rate;type:decimal(9,6);not null" json:"hst_rate"`
	QSTRate         decimal.Decimal `gorm:"column:qst_rate;type:decimal(9,6);not null" json:"qst_rate"`
	VATRate         decimal.Decimal `gorm:"column:vat_rate;type:decimal(9,6);not null" json:"vat_rate"`

	// Policy switches
	Rounding            enum.RoundingPolicy `gorm:"default:0" json:"rounding"`
	TakeoutFoodExempt   bool                `json:"takeout_food_exempt"`
	AlcoholDiscountable bool                `json:"alcohol_discountable"`
	NewQSTMethod        bool                `gorm:"column:new_qst_method" json:"new_qst_method"`
	PSTExemptUnder      int64               `gorm:"column:pst_exempt_under;default:0" json:"pst_exempt_under"` // cents, 0 disables

	// Change policy per tender
	ChangeForCredit bool `json:"change_for_credit"`
	ChangeForRoom   bool `json:"change_for_room"`
	ChangeForCheck  bool `json:"change_for_check"`
	ChangeForGift   bool `json:"change_for_gift"`

	// Comma separated tender names whose excess may be kept as a captured tip
	TipCaptureTenders string `gorm:"size:255" json:"tip_capture_tenders"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *TaxSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxSettings model
func (TaxSettings) TableName() string {
	return "tax_settings"
}

// TipTenders parses TipCaptureTenders, skipping unknown names
func (s *TaxSettings) TipTenders() []enum.TenderType {
	var out []enum.TenderType
	for _, name := range strings.Split(s.TipCaptureTenders, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var t enum.TenderType
		if err := t.UnmarshalJSON([]byte(`"` + name + `"`)); err == nil {
			out = append(out, t)
		}
	}
	return out
}
