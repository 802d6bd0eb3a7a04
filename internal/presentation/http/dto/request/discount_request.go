package request

import "github.com/viewtouch/settle-api/internal/domain/enum"

// DiscountRequest creates or replaces a discount, coupon, comp, employee
// meal or gratuity definition
type DiscountRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	Tender         enum.TenderType `json:"tender"`
	Amount         int64           `json:"amount"`
	IsPercent      bool            `json:"is_percent"`
	NoRevenue      bool            `json:"no_revenue"`
	NoTax          bool            `json:"no_tax"`
	CoverTax       bool            `json:"cover_tax"`
	NoRestrictions bool            `json:"no_restrictions"`
	ApplyEach      bool            `json:"apply_each"`
	ItemMatch      string          `json:"item_match" binding:"max=255"`
	FamilyMatch    string          `json:"family_match" binding:"max=64"`
	Active         *bool           `json:"active"`
}
