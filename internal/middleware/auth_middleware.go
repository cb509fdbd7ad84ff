package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	autherrors "hr-erp/internal/auth/errors"
	"hr-erp/internal/shared/contextutil"
	"hr-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityResolver re-resolves the token's subject on every request so a
// token for a deleted employee stops working immediately.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, employeeID string) (id, role string, err error)
}

func AuthMiddleware(secret string, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Token not found")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Message)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.Error(c, http.StatusUnauthorized, "Employee ID not found in token")
			c.Abort()
			return
		}

		id, role, err := resolver.ResolveIdentity(c.Request.Context(), employeeID)
		if err != nil {
			errObj := autherrors.ErrEmployeeGone
			response.Error(c, errObj.HTTPStatus, errObj.Message)
			c.Abort()
			return
		}

		c.Set("employee_id", id)
		c.Set("role", role)

		ctx := contextutil.WithEmployeeID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
