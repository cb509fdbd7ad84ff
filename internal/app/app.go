package app

import (
	"hr-erp/internal/config"
	"hr-erp/internal/shared/connection"

	"github.com/gin-gonic/gin"
)

func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, 5)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	return registerModules(router, cfg, db, gormDB)
}
