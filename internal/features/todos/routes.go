// ================== internal/features/todos/routes.go ==================
package todos

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xyz-asif/imagetodo/internal/config"
	"github.com/xyz-asif/imagetodo/internal/pkg/ratelimit"
)

func RegisterRoutes(router *gin.RouterGroup, store *Store, cfg *config.Config, log *zap.Logger) *Controller {
	form := NewController(store, cfg.MaxImageBytes(), log)
	handler := NewHandler(store, form, log)

	submit := []gin.HandlerFunc{handler.Submit}
	if cfg.SubmitRatePerMin > 0 {
		limiter := ratelimit.New(cfg.SubmitRatePerMin, time.Minute)
		submit = append([]gin.HandlerFunc{ratelimit.Middleware(limiter)}, submit...)
	}

	todos := router.Group("/todos")
	{
		todos.GET("", handler.List)
		todos.GET("/events", handler.Events)
		todos.GET("/:id", handler.Get)
		todos.GET("/:id/image", handler.Image)
		todos.PATCH("/:id/status", handler.ToggleStatus)
		todos.DELETE("/:id", handler.Delete)
	}

	formGroup := router.Group("/form")
	{
		formGroup.GET("", handler.FormState)
		formGroup.POST("", submit...)
		formGroup.POST("/edit/:id", handler.BeginEdit)
		formGroup.DELETE("/edit", handler.CancelEdit)
		formGroup.POST("/preview", handler.Preview)
	}

	return form
}
