package middleware

import (
	"net/http"

	"hr-erp/internal/rbac"
	"hr-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface: any package with a matching Enforce
// method can be plugged in.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok {
			response.Error(c, http.StatusUnauthorized, "missing auth context")
			c.Abort()
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     role.(string),
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred")
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "You do not have permission to access this resource")
			c.Abort()
			return
		}
		c.Next()
	}
}
