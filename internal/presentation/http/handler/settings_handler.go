package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/viewtouch/settle-api/internal/application/service"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/request"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles tax settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the tax settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetTaxSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings replaces the tax settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateTaxSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateTaxSettings(c.Request.Context(), &service.UpdateTaxSettingsInput{
		StoreName:           req.StoreName,
		FoodRate:            req.FoodRate,
		AlcoholRate:         req.AlcoholRate,
		RoomRate:            req.RoomRate,
		MerchandiseRate:     req.MerchandiseRate,
		GSTRate:             req.GSTRate,
		PSTRate:             req.PSTRate,
		HSTRate:             req.HSTRate,
		QSTRate:             req.QSTRate,
		VATRate:             req.VATRate,
		Rounding:            req.Rounding,
		TakeoutFoodExempt:   req.TakeoutFoodExempt,
		AlcoholDiscountable: req.AlcoholDiscountable,
		NewQSTMethod:        req.NewQSTMethod,
		PSTExemptUnder:      req.PSTExemptUnder,
		ChangeForCredit:     req.ChangeForCredit,
		ChangeForRoom:       req.ChangeForRoom,
		ChangeForCheck:      req.ChangeForCheck,
		ChangeForGift:       req.ChangeForGift,
		TipCaptureTenders:   req.TipCaptureTenders,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
