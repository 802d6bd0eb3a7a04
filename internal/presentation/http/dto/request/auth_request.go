package request

// LoginRequest represents a PIN sign-in at a terminal
type LoginRequest struct {
	Code string `json:"code" binding:"required,max=32"`
	PIN  string `json:"pin" binding:"required,min=4,max=16"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePINRequest represents a PIN change request
type ChangePINRequest struct {
	CurrentPIN string `json:"current_pin" binding:"required"`
	NewPIN     string `json:"new_pin" binding:"required,min=4,max=16,numeric"`
	ConfirmPIN string `json:"confirm_pin" binding:"required,eqfield=NewPIN"`
}

// CreateEmployeeRequest represents an employee creation request
type CreateEmployeeRequest struct {
	Code      string `json:"code" binding:"required,max=32"`
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
	PIN       string `json:"pin" binding:"required,min=4,max=16,numeric"`
	Role      string `json:"role" binding:"omitempty,oneof=manager server"`
	DrawerNo  *int   `json:"drawer_no" binding:"omitempty,min=0"`
	Active    *bool  `json:"active"`
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	Code      string `json:"code" binding:"omitempty,max=32"`
	FirstName string `json:"first_name" binding:"omitempty,max=255"`
	LastName  string `json:"last_name" binding:"omitempty,max=255"`
	PIN       string `json:"pin" binding:"omitempty,min=4,max=16,numeric"`
	Role      string `json:"role" binding:"omitempty,oneof=manager server"`
	DrawerNo  *int   `json:"drawer_no" binding:"omitempty,min=0"`
	Active    *bool  `json:"active"`
}

// EmployeeFilterRequest represents employee list parameters
type EmployeeFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
