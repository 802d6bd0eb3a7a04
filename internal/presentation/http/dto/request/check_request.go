package request

import (
	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/enum"
)

// OpenCheckRequest represents a request to open a check
type OpenCheckRequest struct {
	TableLabel string         `json:"table_label" binding:"max=32"`
	Guests     int            `json:"guests" binding:"min=0"`
	OrderType  enum.OrderType `json:"order_type"`
}

// CheckFilterRequest represents check list filter parameters
type CheckFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// OrderRequest represents an item or modifier rung in at a terminal.
// Amounts are in cents.
type OrderRequest struct {
	Name               string             `json:"name" binding:"required,max=255"`
	Family             string             `json:"family" binding:"max=64"`
	Category           enum.SalesCategory `json:"category"`
	SalesGroup         enum.SalesGroup    `json:"sales_group"`
	UnitCost           int64              `json:"unit_cost" binding:"min=0"`
	Count              int64              `json:"count" binding:"min=0"`
	WeightPriced       bool               `json:"weight_priced"`
	Reduced            bool               `json:"reduced"`
	ReducedCost        int64              `json:"reduced_cost" binding:"min=0"`
	NoComp             bool               `json:"no_comp"`
	NoEmployeeDiscount bool               `json:"no_employee_discount"`
	NoDiscount         bool               `json:"no_discount"`
	Untaxed            bool               `json:"untaxed"`
	Qualifier          enum.Qualifier     `json:"qualifier"`
}

// PaymentRequest represents a tender entered at a terminal. Amount is in
// cents, or basis points when IsPercent is set.
type PaymentRequest struct {
	Tender         enum.TenderType `json:"tender"`
	TenderID       *uuid.UUID      `json:"tender_id"`
	Amount         int64           `json:"amount"`
	IsPercent      bool            `json:"is_percent"`
	NoRevenue      bool            `json:"no_revenue"`
	NoTax          bool            `json:"no_tax"`
	CoverTax       bool            `json:"cover_tax"`
	NoRestrictions bool            `json:"no_restrictions"`
	Final          bool            `json:"final"`
	OpenTab        bool            `json:"open_tab"`
}

// FinalizeTabRequest names the open tab to finalize; empty finalizes all
type FinalizeTabRequest struct {
	PaymentID *uuid.UUID `json:"payment_id"`
}

// TaxExemptRequest sets or clears the tax exemption id
type TaxExemptRequest struct {
	ExemptID string `json:"exempt_id" binding:"max=64"`
}

// DeliveryChargeRequest sets the delivery charge in cents
type DeliveryChargeRequest struct {
	Amount int64 `json:"amount" binding:"min=0"`
}
