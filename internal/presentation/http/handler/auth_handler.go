package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/viewtouch/settle-api/internal/application/service"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/request"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/response"
	"github.com/viewtouch/settle-api/pkg/pagination"
)

// AuthHandler handles employee sign-in and employee records
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func employeeView(e *entity.Employee) gin.H {
	return gin.H{
		"id":         e.ID,
		"code":       e.Code,
		"first_name": e.FirstName,
		"last_name":  e.LastName,
		"role":       e.Role,
		"roles":      e.Roles(),
		"drawer_no":  e.DrawerNo,
		"active":     e.Active,
	}
}

func tokenView(output *service.LoginOutput) gin.H {
	return gin.H{
		"employee":      employeeView(output.Employee),
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	}
}

// Login handles employee sign-in
// @Summary Login
// @Description Authenticate an employee by code and PIN and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Code: req.Code,
		PIN:  req.PIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", tokenView(output))
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", tokenView(output))
}

// Logout handles sign-out. Tokens are stateless, so the terminal drops them.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in employee
func (h *AuthHandler) GetProfile(c *gin.Context) {
	employeeID := GetEmployeeID(c)
	if employeeID == nil {
		response.Unauthorized(c, "Employee not authenticated")
		return
	}

	employee, err := h.authService.GetEmployee(c.Request.Context(), *employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", employeeView(employee))
}

// ChangePIN handles changing the signed-in employee's PIN
func (h *AuthHandler) ChangePIN(c *gin.Context) {
	employeeID := GetEmployeeID(c)
	if employeeID == nil {
		response.Unauthorized(c, "Employee not authenticated")
		return
	}

	var req request.ChangePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePIN(c.Request.Context(), &service.ChangePINInput{
		EmployeeID: *employeeID,
		CurrentPIN: req.CurrentPIN,
		NewPIN:     req.NewPIN,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PIN changed successfully", nil)
}

// ListEmployees handles listing employees
func (h *AuthHandler) ListEmployees(c *gin.Context) {
	var filter request.EmployeeFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	result, err := h.authService.ListEmployees(c.Request.Context(), params, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Employees retrieved successfully", result)
}

// GetEmployee handles getting one employee
func (h *AuthHandler) GetEmployee(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "employee")
	if !ok {
		return
	}

	employee, err := h.authService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employeeView(employee))
}

// CreateEmployee handles creating an employee
func (h *AuthHandler) CreateEmployee(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.CreateEmployee(c.Request.Context(), &service.EmployeeInput{
		Code:      req.Code,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PIN:       req.PIN,
		Role:      req.Role,
		DrawerNo:  req.DrawerNo,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employeeView(employee))
}

// UpdateEmployee handles updating an employee
func (h *AuthHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "employee")
	if !ok {
		return
	}

	var req request.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.UpdateEmployee(c.Request.Context(), id, &service.EmployeeInput{
		Code:      req.Code,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PIN:       req.PIN,
		Role:      req.Role,
		DrawerNo:  req.DrawerNo,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employeeView(employee))
}
