package billing

import (
	"hr-erp/internal/middleware"
	"hr-erp/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	secret string,
	resolver middleware.IdentityResolver,
	rbacService rbac.Service,
) {
	subs := r.Group("/subscriptions")
	subs.Use(middleware.AuthMiddleware(secret, resolver))
	subs.Use(middleware.RBACAuthorize(rbacService, rbac.ResourceSubscription, rbac.ActionManage))
	{
		subs.POST("", handler.Create)
		subs.GET("", handler.List)
		subs.POST("/schedule", handler.Schedule)
		subs.GET("/:id", handler.Get)
		subs.PUT("/:id", handler.Update)
		subs.DELETE("/:id", handler.Cancel)
		subs.POST("/:id/resume", handler.Resume)
		subs.GET("/:id/invoices", handler.Invoices)
	}
}
