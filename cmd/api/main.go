// ================== cmd/api/main.go ==================
//
// @title Image Todo API
// @version 1.0
// @description Single-user todo list with an image per item
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	docs "github.com/xyz-asif/imagetodo/docs"
	"github.com/xyz-asif/imagetodo/internal/config"
	"github.com/xyz-asif/imagetodo/internal/features/todos"
	"github.com/xyz-asif/imagetodo/internal/middleware"
	"github.com/xyz-asif/imagetodo/internal/pkg/logger"
	"github.com/xyz-asif/imagetodo/internal/pkg/response"
	"github.com/xyz-asif/imagetodo/internal/routes"
	"github.com/xyz-asif/imagetodo/internal/storage"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	ctx := context.Background()

	repo, closeRepo, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer func() {
		if err := closeRepo(context.Background()); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
	}()

	store, err := todos.NewStore(ctx, repo, log.Named("store"))
	if err != nil {
		log.Fatal("failed to load todos", zap.Error(err))
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log.Named("http")))
	router.Use(middleware.CORS(cfg.FrontendURL))
	router.MaxMultipartMemory = cfg.MaxImageBytes()

	router.GET("/health", func(c *gin.Context) {
		if err := storage.Ping(c.Request.Context(), repo); err != nil {
			log.Warn("storage health check failed", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, "Storage unreachable", "STORAGE_UNAVAILABLE")
			return
		}
		response.Success(c, map[string]interface{}{
			"status":  "ok",
			"time":    time.Now().Unix(),
			"storage": cfg.StorageDriver,
			"todos":   len(store.List()),
		})
	})

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	routes.SetupRoutes(router, store, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
