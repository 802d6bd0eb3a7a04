package request

import (
	"github.com/shopspring/decimal"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// UpdateTaxSettingsRequest replaces the tax settings. Rates are fractions,
// so 0.05 is five percent.
type UpdateTaxSettingsRequest struct {
	StoreName           string              `json:"store_name" binding:"max=255"`
	FoodRate            decimal.Decimal     `json:"food_rate"`
	AlcoholRate         decimal.Decimal     `json:"alcohol_rate"`
	RoomRate            decimal.Decimal     `json:"room_rate"`
	MerchandiseRate     decimal.Decimal     `json:"merchandise_rate"`
	GSTRate             decimal.Decimal     `json:"gst_rate"`
	PSTRate             decimal.Decimal     `json:"pst_rate"`
	HSTRate             decimal.Decimal     `json:"hst_rate"`
	QSTRate             decimal.Decimal     `json:"qst_rate"`
	VATRate             decimal.Decimal     `json:"vat_rate"`
	Rounding            enum.RoundingPolicy `json:"rounding"`
	TakeoutFoodExempt   bool                `json:"takeout_food_exempt"`
	AlcoholDiscountable bool                `json:"alcohol_discountable"`
	NewQSTMethod        bool                `json:"new_qst_method"`
	PSTExemptUnder      int64               `json:"pst_exempt_under"`
	ChangeForCredit     bool                `json:"change_for_credit"`
	ChangeForRoom       bool                `json:"change_for_room"`
	ChangeForCheck      bool                `json:"change_for_check"`
	ChangeForGift       bool                `json:"change_for_gift"`
	TipCaptureTenders   string              `json:"tip_capture_tenders" binding:"max=255"`
}
