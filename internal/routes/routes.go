package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xyz-asif/imagetodo/internal/config"
	"github.com/xyz-asif/imagetodo/internal/features/todos"
)

func SetupRoutes(router *gin.Engine, store *todos.Store, cfg *config.Config, log *zap.Logger) {
	// API v1 group
	api := router.Group("/api/v1")

	todos.RegisterRoutes(api, store, cfg, log.Named("todos"))
}
