package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/viewtouch/settle-api/internal/application/service"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/request"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/response"
)

// DiscountHandler handles discount definition HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

func discountInput(req *request.DiscountRequest) *service.DiscountInput {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &service.DiscountInput{
		Name:           req.Name,
		Tender:         req.Tender,
		Amount:         req.Amount,
		IsPercent:      req.IsPercent,
		NoRevenue:      req.NoRevenue,
		NoTax:          req.NoTax,
		CoverTax:       req.CoverTax,
		NoRestrictions: req.NoRestrictions,
		ApplyEach:      req.ApplyEach,
		ItemMatch:      req.ItemMatch,
		FamilyMatch:    req.FamilyMatch,
		Active:         active,
	}
}

// List handles listing definitions, filtered by ?tender= and ?active=true
func (h *DiscountHandler) List(c *gin.Context) {
	var tender *enum.TenderType
	if raw := c.Query("tender"); raw != "" {
		var t enum.TenderType
		if err := parseEnum(raw, &t); err != nil {
			response.BadRequest(c, "Invalid tender")
			return
		}
		tender = &t
	}

	defs, err := h.discountService.ListDiscounts(c.Request.Context(), tender, c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discounts retrieved successfully", defs)
}

// Get handles getting one definition
func (h *DiscountHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "discount")
	if !ok {
		return
	}

	d, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount retrieved successfully", d)
}

// Create handles creating a definition
func (h *DiscountHandler) Create(c *gin.Context) {
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	d, err := h.discountService.CreateDiscount(c.Request.Context(), discountInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount created successfully", d)
}

// Update handles replacing a definition
func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "discount")
	if !ok {
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	d, err := h.discountService.UpdateDiscount(c.Request.Context(), id, discountInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount updated successfully", d)
}

// Delete handles removing a definition
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "discount")
	if !ok {
		return
	}

	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount deleted successfully", nil)
}
