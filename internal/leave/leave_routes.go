package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(secret, resolver))
	{
		leaves.POST("/apply", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApply), handler.Apply)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionListPending), handler.Pending)
		leaves.PATCH("/:id/approve", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApprove), handler.Approve)
		leaves.PATCH("/:id/reject", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReject), handler.Reject)
		leaves.GET("/history", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionHistory), handler.History)
	}
}
