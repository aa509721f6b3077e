package api

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	chatHandler "game-concierge/internal/api/handlers/chat"
	"game-concierge/internal/api/handlers/health"
	productsHandler "game-concierge/internal/api/handlers/products"
	"game-concierge/internal/api/middleware"
	"game-concierge/internal/core/catalog"
	"game-concierge/internal/core/detect"
	"game-concierge/internal/core/llm"
	"game-concierge/internal/core/resolve"
	"game-concierge/internal/core/sample"
	"game-concierge/internal/infrastructure/config"
	"game-concierge/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// リクエスト全体のタイムアウト
	timeoutDuration = 90 * time.Second
	// リクエストボディ上限 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter ルータを構築する
func SetupRouter(cfg *config.Config, snapshotCache *catalog.SnapshotCache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// gin モード設定
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基本 middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS は許可オリジンのみ通す（EC ショップのウィジェットから呼ばれる）
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        24 * time.Hour,
	}))

	// ボディサイズ制限
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// レート制限と重複排除
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.OpenAI.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// コラボレータと解決エンジンの組み立て
	catalogClient := catalog.NewClient(cfg)
	llmClient := llm.NewClient(cfg)
	detector := detect.NewDetector()
	sampler := sample.NewSampler(rand.New(rand.NewSource(time.Now().UnixNano())))
	resolver := resolve.NewResolver(detector, catalogClient, llmClient, sampler, cfg.Resolve)

	// タイムアウトと設定注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		// タイムアウト確認
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
			return
		}
	})

	// ヘルスチェック
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API ルート
	api := router.Group("/api/v1")
	{
		chat := chatHandler.NewHandler(resolver)
		api.POST("/chat", chat.HandleChat)

		// スナップショット同期は共有トークン必須
		sync := api.Group("/sync", middleware.BearerAuth(cfg.Shop.Token))
		{
			products := productsHandler.NewHandler(catalogClient, snapshotCache, cfg.Cache.SyncLimit)
			sync.POST("/products", products.HandleSync)
			sync.GET("/products", products.HandleStatus)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
