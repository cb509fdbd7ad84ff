package auth

import (
	"hr-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, secret string, resolver middleware.IdentityResolver) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(0.1, 5), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(secret, resolver), handler.Logout)
	}
}
