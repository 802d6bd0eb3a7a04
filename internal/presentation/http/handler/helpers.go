package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/response"
	"github.com/viewtouch/settle-api/internal/presentation/http/middleware"
)

// GetEmployeeID extracts the signed-in employee ID from the Gin context
func GetEmployeeID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get(middleware.ContextEmployeeID)
	if !exists {
		return nil
	}
	employeeID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &employeeID
}

// GetEmployeeRoles extracts the employee roles from the Gin context
func GetEmployeeRoles(c *gin.Context) []string {
	roles, exists := c.Get(middleware.ContextRoles)
	if !exists {
		return nil
	}
	out, _ := roles.([]string)
	return out
}

// GetDrawerNo extracts the employee's assigned drawer from the Gin context
func GetDrawerNo(c *gin.Context) int {
	drawer, exists := c.Get(middleware.ContextDrawerNo)
	if !exists {
		return 0
	}
	out, _ := drawer.(int)
	return out
}

// IsManager checks if the employee has the manager role
func IsManager(c *gin.Context) bool {
	for _, role := range GetEmployeeRoles(c) {
		if role == entity.RoleManager {
			return true
		}
	}
	return false
}

// parseUUIDParam parses a path parameter, writing a 400 when it is malformed
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseEnum decodes an enum from its name as given in a query string
func parseEnum(value string, dst json.Unmarshaler) error {
	return dst.UnmarshalJSON([]byte(strconv.Quote(value)))
}
