package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	chatHandler "garden-advisor/internal/api/handlers/chat"
	"garden-advisor/internal/api/handlers/health"
	"garden-advisor/internal/api/middleware"
	"garden-advisor/internal/core/ai/cache"
	aiService "garden-advisor/internal/core/ai/service"
	"garden-advisor/internal/core/ai/throttle"
	"garden-advisor/internal/core/catalog"
	chatService "garden-advisor/internal/core/chat"
	"garden-advisor/internal/core/garden"
	"garden-advisor/internal/core/service"
	"garden-advisor/internal/infrastructure/config"
	"garden-advisor/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// One chat turn makes two upstream calls plus the throttle delay, so
	// the request budget is wider than the per-call timeout.
	timeoutDuration = 90 * time.Second
	// Request body size limit (1MB). Chat bodies are small.
	maxBodySize = 1 << 20
)

// SetupRouter wires middleware, services and routes.
func SetupRouter(cfg *config.Config, index *catalog.Index) (*gin.Engine, error) {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	common.LogInfo("initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.Together.Model),
		zap.Int("catalog_products", index.Len()),
		zap.Duration("timeout", timeoutDuration),
	)

	store, err := cache.NewStore(cfg)
	if err != nil {
		common.LogError("failed to initialize cache store", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}

	together := service.NewTogetherService(cfg)
	limiter := throttle.NewLimiter(cfg.AI.MinDelay)
	ai := aiService.NewService(cfg, together, limiter, store)

	chatSvc := chatService.NewService(ai, index, cfg)
	gardenSvc := garden.NewService()

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("catalog_index", index)
		c.Set("chat_service", chatSvc)
		c.Set("garden_service", gardenSvc)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	chatHandlerInstance := chatHandler.NewHandler(chatSvc)
	gardenHandlerInstance := chatHandler.NewGardenHandler(gardenSvc)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg))
	{
		api.POST("/chat", chatHandlerInstance.HandleChat)
		api.POST("/chat/specifications", gardenHandlerInstance.HandleSpecifications)
		api.GET("/suggestions", gardenHandlerInstance.HandleSuggestions)
		api.GET("/categories", gardenHandlerInstance.HandleCategories)
	}

	common.LogInfo("router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
