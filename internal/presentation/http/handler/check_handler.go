package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/application/service"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/request"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/response"
	"github.com/viewtouch/settle-api/pkg/pagination"
)

// maxImportSize bounds an imported subcheck record
const maxImportSize = 1 << 20

// CheckHandler handles check and subcheck HTTP requests
type CheckHandler struct {
	checkService *service.CheckService
}

// NewCheckHandler creates a new check handler
func NewCheckHandler(checkService *service.CheckService) *CheckHandler {
	return &CheckHandler{checkService: checkService}
}

// Open handles opening a new check
// @Summary Open check
// @Tags checks
// @Accept json
// @Produce json
// @Param request body request.OpenCheckRequest true "Check data"
// @Success 201 {object} response.APIResponse
// @Router /checks [post]
func (h *CheckHandler) Open(c *gin.Context) {
	employeeID := GetEmployeeID(c)
	if employeeID == nil {
		response.Unauthorized(c, "Employee not authenticated")
		return
	}

	var req request.OpenCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	check, err := h.checkService.OpenCheck(c.Request.Context(), &service.OpenCheckInput{
		EmployeeID: *employeeID,
		TableLabel: req.TableLabel,
		Guests:     req.Guests,
		OrderType:  req.OrderType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Check opened successfully", check)
}

// List handles listing checks
func (h *CheckHandler) List(c *gin.Context) {
	var filter request.CheckFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListChecksInput{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.Status != "" {
		var status enum.CheckStatus
		if err := parseEnum(filter.Status, &status); err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}

	if filter.EmployeeID != "" {
		id, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			response.BadRequest(c, "Invalid employee ID")
			return
		}
		input.EmployeeID = &id
	}
	// servers only see their own checks
	if !IsManager(c) {
		input.EmployeeID = GetEmployeeID(c)
	}

	if filter.StartDate != "" {
		t, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		input.StartDate = &t
	}
	if filter.EndDate != "" {
		t, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		// inclusive of the whole end day
		t = t.Add(24*time.Hour - time.Nanosecond)
		input.EndDate = &t
	}

	result, err := h.checkService.ListChecks(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Checks retrieved successfully", result)
}

// Get handles getting a check with every subcheck
func (h *CheckHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "check")
	if !ok {
		return
	}

	check, err := h.checkService.GetCheck(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Check retrieved successfully", check)
}

// Split handles adding another subcheck to a check
func (h *CheckHandler) Split(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "check")
	if !ok {
		return
	}

	sc, err := h.checkService.SplitCheck(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Subcheck created successfully", sc)
}

// Import handles restoring an exported subcheck record onto a check
func (h *CheckHandler) Import(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "check")
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil || len(data) == 0 {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sc, err := h.checkService.ImportSubCheck(c.Request.Context(), id, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Subcheck imported successfully", sc)
}

// GetSubCheck handles getting one subcheck with its orders and payments
func (h *CheckHandler) GetSubCheck(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	sc, err := h.checkService.GetSubCheck(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Subcheck retrieved successfully", sc)
}

func orderInput(req *request.OrderRequest) *service.OrderInput {
	return &service.OrderInput{
		Name:               req.Name,
		Family:             req.Family,
		Category:           req.Category,
		SalesGroup:         req.SalesGroup,
		UnitCost:           req.UnitCost,
		Count:              req.Count,
		WeightPriced:       req.WeightPriced,
		Reduced:            req.Reduced,
		ReducedCost:        req.ReducedCost,
		NoComp:             req.NoComp,
		NoEmployeeDiscount: req.NoEmployeeDiscount,
		NoDiscount:         req.NoDiscount,
		Untaxed:            req.Untaxed,
		Qualifier:          req.Qualifier,
	}
}

// AddOrder handles ringing an item onto a subcheck
func (h *CheckHandler) AddOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sc, err := h.checkService.AddOrder(c.Request.Context(), id, orderInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order added successfully", sc)
}

// AddModifier handles attaching a modifier to an order
func (h *CheckHandler) AddModifier(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "orderId", "order")
	if !ok {
		return
	}

	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sc, err := h.checkService.AddModifier(c.Request.Context(), id, orderID, orderInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Modifier added successfully", sc)
}

// orderAction runs a service call that takes a subcheck and an order ID
func (h *CheckHandler) orderAction(
	c *gin.Context,
	message string,
	fn func(ctx context.Context, subCheckID, orderID uuid.UUID) (*entity.SubCheck, error),
) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "orderId", "order")
	if !ok {
		return
	}

	sc, err := fn(c.Request.Context(), id, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, sc)
}

// RemoveOrder handles removing an unsent order and its modifiers
func (h *CheckHandler) RemoveOrder(c *gin.Context) {
	h.orderAction(c, "Order removed successfully", h.checkService.RemoveOrder)
}

// CompOrder handles comping an order
func (h *CheckHandler) CompOrder(c *gin.Context) {
	h.orderAction(c, "Order comped successfully", h.checkService.CompOrder)
}

// UncompOrder handles reversing a comp
func (h *CheckHandler) UncompOrder(c *gin.Context) {
	h.orderAction(c, "Comp removed successfully", h.checkService.UncompOrder)
}

// VoidOrder handles voiding an order
func (h *CheckHandler) VoidOrder(c *gin.Context) {
	h.orderAction(c, "Order voided successfully", h.checkService.VoidOrder)
}

// AddPayment handles applying a tender to a subcheck
// @Summary Add payment
// @Tags subchecks
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Retry key"
// @Param request body request.PaymentRequest true "Tender"
// @Success 201 {object} response.APIResponse
// @Router /subchecks/{id}/payments [post]
func (h *CheckHandler) AddPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sc, err := h.checkService.AddPayment(c.Request.Context(), id, &service.PaymentInput{
		Tender:         req.Tender,
		TenderID:       req.TenderID,
		Amount:         req.Amount,
		IsPercent:      req.IsPercent,
		NoRevenue:      req.NoRevenue,
		NoTax:          req.NoTax,
		CoverTax:       req.CoverTax,
		NoRestrictions: req.NoRestrictions,
		Final:          req.Final,
		OpenTab:        req.OpenTab,
		DrawerNo:       GetDrawerNo(c),
		EmployeeID:     GetEmployeeID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment applied successfully", sc)
}

// RemovePayment handles removing an entered payment
func (h *CheckHandler) RemovePayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}
	paymentID, ok := parseUUIDParam(c, "paymentId", "payment")
	if !ok {
		return
	}

	sc, err := h.checkService.RemovePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment removed successfully", sc)
}

// FinalizeTab handles turning open tabs into final payments
func (h *CheckHandler) FinalizeTab(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	var req request.FinalizeTabRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	sc, err := h.checkService.FinalizeTab(c.Request.Context(), id, req.PaymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tab finalized successfully", sc)
}

// SetTaxExempt handles setting or clearing the tax exemption id
func (h *CheckHandler) SetTaxExempt(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	var req request.TaxExemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sc, err := h.checkService.SetTaxExempt(c.Request.Context(), id, req.ExemptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax exemption updated successfully", sc)
}

// SetDeliveryCharge handles setting the delivery charge
func (h *CheckHandler) SetDeliveryCharge(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	var req request.DeliveryChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sc, err := h.checkService.SetDeliveryCharge(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery charge updated successfully", sc)
}

// subCheckAction runs a service call that only takes the subcheck ID
func (h *CheckHandler) subCheckAction(
	c *gin.Context,
	message string,
	fn func(ctx context.Context, id uuid.UUID) (*entity.SubCheck, error),
) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	sc, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, sc)
}

// ConsolidatePayments handles merging payments of the same tender
func (h *CheckHandler) ConsolidatePayments(c *gin.Context) {
	h.subCheckAction(c, "Payments consolidated successfully", h.checkService.ConsolidatePayments)
}

// Recompute handles re-running settlement on a subcheck
func (h *CheckHandler) Recompute(c *gin.Context) {
	h.subCheckAction(c, "Subcheck recomputed successfully", h.checkService.Recompute)
}

// Close handles closing a settled subcheck
func (h *CheckHandler) Close(c *gin.Context) {
	h.subCheckAction(c, "Subcheck closed successfully", h.checkService.CloseSubCheck)
}

// Void handles voiding a subcheck without payments
func (h *CheckHandler) Void(c *gin.Context) {
	h.subCheckAction(c, "Subcheck voided successfully", h.checkService.VoidSubCheck)
}

// Export handles downloading the versioned subcheck record
func (h *CheckHandler) Export(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "subcheck")
	if !ok {
		return
	}

	data, err := h.checkService.ExportSubCheck(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=subcheck-"+id.String()+".json")
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
