package app

import (
	"database/sql"

	"hr-erp/internal/auth"
	"hr-erp/internal/billing"
	"hr-erp/internal/config"
	"hr-erp/internal/employee"
	"hr-erp/internal/leave"
	"hr-erp/internal/middleware"
	"hr-erp/internal/rbac"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(employeeRepo, cfg)
	leaveService := leave.NewService(db, leaveRepo)
	billingService := billing.NewService(billing.NewStripeGateway(cfg.StripeSecretKey))

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandler(leaveService)
	billingHandler := billing.NewHandler(billingService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret, authService)
		leave.RegisterRoutes(api, leaveHandler, cfg.JWTSecret, authService, rbacService)
		billing.RegisterRoutes(api, billingHandler, cfg.JWTSecret, authService, rbacService)
	}

	return nil
}
