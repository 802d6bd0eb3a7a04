package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/pkg/apperror"
	"github.com/viewtouch/settle-api/pkg/pagination"
	"github.com/viewtouch/settle-api/pkg/utils"
)

// AuthService handles employee sign-in and employee records
type AuthService struct {
	employeeRepo repository.EmployeeRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(employeeRepo repository.EmployeeRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		jwtManager:   jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Code string
	PIN  string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Employee     *entity.Employee
	AccessToken  string
	RefreshToken string
}

// Login authenticates an employee by code and PIN and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	employee, err := s.employeeRepo.GetByCode(ctx, strings.TrimSpace(input.Code))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPINHash(input.PIN, employee.PIN) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !employee.Active {
		return nil, apperror.ErrEmployeeInactive
	}

	return s.issue(employee)
}

func (s *AuthService) issue(employee *entity.Employee) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(employee.ID, employee.FullName(), employee.Roles(), employee.DrawerNo)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(employee.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Employee:     employee,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	employeeID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !employee.Active {
		return nil, apperror.ErrEmployeeInactive
	}

	return s.issue(employee)
}

// GetEmployee returns an employee by ID
func (s *AuthService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// EmployeeInput represents the input for creating or updating an employee
type EmployeeInput struct {
	Code      string
	FirstName string
	LastName  string
	PIN       string
	Role      string
	DrawerNo  *int
	Active    *bool
}

func validRole(role string) bool {
	return role == entity.RoleManager || role == entity.RoleServer
}

// CreateEmployee adds an employee who can sign in at a terminal
func (s *AuthService) CreateEmployee(ctx context.Context, input *EmployeeInput) (*entity.Employee, error) {
	existing, err := s.employeeRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Employee code already in use")
	}

	role := input.Role
	if role == "" {
		role = entity.RoleServer
	}
	if !validRole(role) {
		return nil, apperror.NewBadRequestError("Unknown role " + role)
	}

	hash, err := utils.HashPIN(input.PIN)
	if err != nil {
		return nil, err
	}

	employee := &entity.Employee{
		Code:      input.Code,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		PIN:       hash,
		Role:      role,
		Active:    true,
	}
	if input.DrawerNo != nil {
		employee.DrawerNo = *input.DrawerNo
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	// active defaults to true in the table, so an inactive hire is a second write
	if input.Active != nil && !*input.Active {
		employee.Active = false
		if err := s.employeeRepo.Update(ctx, employee); err != nil {
			return nil, err
		}
	}
	return employee, nil
}

// UpdateEmployee changes an employee's details; an empty PIN keeps the old one
func (s *AuthService) UpdateEmployee(ctx context.Context, id uuid.UUID, input *EmployeeInput) (*entity.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != "" && input.Code != employee.Code {
		existing, err := s.employeeRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Employee code already in use")
		}
		employee.Code = input.Code
	}
	if input.FirstName != "" {
		employee.FirstName = input.FirstName
	}
	if input.LastName != "" {
		employee.LastName = input.LastName
	}
	if input.Role != "" {
		if !validRole(input.Role) {
			return nil, apperror.NewBadRequestError("Unknown role " + input.Role)
		}
		employee.Role = input.Role
	}
	if input.PIN != "" {
		hash, err := utils.HashPIN(input.PIN)
		if err != nil {
			return nil, err
		}
		employee.PIN = hash
	}
	if input.Active != nil {
		employee.Active = *input.Active
	}
	if input.DrawerNo != nil {
		employee.DrawerNo = *input.DrawerNo
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// ListEmployees returns a page of employees
func (s *AuthService) ListEmployees(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Employee], error) {
	params.Validate()
	employees, total, err := s.employeeRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(employees, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ChangePINInput represents the change PIN input
type ChangePINInput struct {
	EmployeeID uuid.UUID
	CurrentPIN string
	NewPIN     string
}

// ChangePIN changes the signed-in employee's PIN
func (s *AuthService) ChangePIN(ctx context.Context, input *ChangePINInput) error {
	employee, err := s.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		return err
	}

	if !utils.CheckPINHash(input.CurrentPIN, employee.PIN) {
		return apperror.NewBadRequestError("Current PIN is incorrect")
	}

	hash, err := utils.HashPIN(input.NewPIN)
	if err != nil {
		return err
	}

	employee.PIN = hash
	return s.employeeRepo.Update(ctx, employee)
}
