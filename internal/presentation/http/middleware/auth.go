package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/viewtouch/settle-api/internal/presentation/http/dto/response"
	"github.com/viewtouch/settle-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextEmployeeID   = "employee_id"
	ContextEmployeeName = "employee_name"
	ContextRoles        = "employee_roles"
	ContextDrawerNo     = "drawer_no"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextEmployeeID, claims.EmployeeID)
		c.Set(ContextEmployeeName, claims.Name)
		c.Set(ContextRoles, claims.Roles)
		c.Set(ContextDrawerNo, claims.DrawerNo)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRoles)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		employeeRoles, ok := value.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, have := range employeeRoles {
			for _, want := range roles {
				if have == want {
					c.Next()
					return
				}
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
