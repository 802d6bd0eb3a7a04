package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	infraRepo "github.com/viewtouch/settle-api/internal/infrastructure/repository"
	"github.com/viewtouch/settle-api/pkg/apperror"
	"github.com/viewtouch/settle-api/pkg/pagination"
	"github.com/viewtouch/settle-api/pkg/utils"
)

func newAuthService(t *testing.T) (*AuthService, *utils.JWTManager) {
	t.Helper()
	f := newFixture(t, false)
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewEmployeeRepository(f.db), jwt), jwt
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, jwt := newAuthService(t)

	drawer := 2
	employee, err := svc.CreateEmployee(ctx, &EmployeeInput{Code: "201", FirstName: "Dana", LastName: "Reyes", PIN: "2468", DrawerNo: &drawer})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleServer, employee.Role)
	assert.NotEqual(t, "2468", employee.PIN)

	out, err := svc.Login(ctx, &LoginInput{Code: "201", PIN: "2468"})
	require.NoError(t, err)
	claims, err := jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, employee.ID, claims.EmployeeID)
	assert.Equal(t, "Dana Reyes", claims.Name)
	assert.Equal(t, 2, claims.DrawerNo)
	assert.False(t, claims.HasRole(entity.RoleManager))

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Login(ctx, &LoginInput{Code: "201", PIN: "0000"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &LoginInput{Code: "999", PIN: "2468"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestAuthService_InactiveEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	employee, err := svc.CreateEmployee(ctx, &EmployeeInput{Code: "301", FirstName: "Lee", PIN: "1111"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateEmployee(ctx, employee.ID, &EmployeeInput{Active: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Code: "301", PIN: "1111"})
	assert.ErrorIs(t, err, apperror.ErrEmployeeInactive)
}

func TestAuthService_EmployeeManagement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	manager, err := svc.CreateEmployee(ctx, &EmployeeInput{Code: "100", FirstName: "Max", PIN: "9999", Role: entity.RoleManager})
	require.NoError(t, err)
	assert.True(t, manager.IsManager())

	_, err = svc.CreateEmployee(ctx, &EmployeeInput{Code: "100", FirstName: "Dup", PIN: "1"})
	requireAppError(t, err, http.StatusConflict)
	_, err = svc.CreateEmployee(ctx, &EmployeeInput{Code: "101", FirstName: "Bad", PIN: "1", Role: "owner"})
	requireAppError(t, err, http.StatusBadRequest)

	require.NoError(t, svc.ChangePIN(ctx, &ChangePINInput{EmployeeID: manager.ID, CurrentPIN: "9999", NewPIN: "8888"}))
	_, err = svc.Login(ctx, &LoginInput{Code: "100", PIN: "8888"})
	assert.NoError(t, err)

	err = svc.ChangePIN(ctx, &ChangePINInput{EmployeeID: manager.ID, CurrentPIN: "9999", NewPIN: "7777"})
	requireAppError(t, err, http.StatusBadRequest)

	page, err := svc.ListEmployees(ctx, pagination.DefaultPagination(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)
}
