package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/internal/presentation/http/middleware"
)

func TestParseEnum(t *testing.T) {
	var status enum.CheckStatus
	require.NoError(t, parseEnum("Voided", &status))
	assert.Equal(t, enum.CheckStatusVoided, status)

	var tender enum.TenderType
	require.NoError(t, parseEnum("Coupon", &tender))
	assert.Equal(t, enum.TenderCoupon, tender)

	assert.Error(t, parseEnum("Bitcoin", &tender))
}

func TestContextHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetEmployeeID(c))
	assert.Equal(t, 0, GetDrawerNo(c))
	assert.False(t, IsManager(c))

	id := uuid.New()
	c.Set(middleware.ContextEmployeeID, id)
	c.Set(middleware.ContextDrawerNo, 4)
	c.Set(middleware.ContextRoles, []string{entity.RoleManager, entity.RoleServer})

	require.NotNil(t, GetEmployeeID(c))
	assert.Equal(t, id, *GetEmployeeID(c))
	assert.Equal(t, 4, GetDrawerNo(c))
	assert.True(t, IsManager(c))
}

func TestParseUUIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	_, ok := parseUUIDParam(c, "id", "check")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid check ID")
}
