package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	checkoutapp "github.com/syncbridge/backend/internal/application/checkout"
	paymentapp "github.com/syncbridge/backend/internal/application/payment"
	syncapp "github.com/syncbridge/backend/internal/application/sync"
	"github.com/syncbridge/backend/internal/infrastructure/config"
	"github.com/syncbridge/backend/internal/infrastructure/dfin"
	"github.com/syncbridge/backend/internal/infrastructure/logger"
	"github.com/syncbridge/backend/internal/infrastructure/persistence"
	"github.com/syncbridge/backend/internal/infrastructure/shopify"
	"github.com/syncbridge/backend/internal/infrastructure/woocommerce"
	"github.com/syncbridge/backend/internal/interfaces/http/handler"
	"github.com/syncbridge/backend/internal/interfaces/http/middleware"
	"github.com/syncbridge/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SyncBridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productMappingRepo := persistence.NewGormProductMappingRepository(db.DB)
	variantMappingRepo := persistence.NewGormVariantMappingRepository(db.DB)
	orderMappingRepo := persistence.NewGormOrderMappingRepository(db.DB)
	paymentMappingRepo := persistence.NewGormPaymentMappingRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)

	// Initialize platform clients
	shopifyClient, err := shopify.NewClient(&shopify.Config{
		APIVersion: cfg.Shopify.APIVersion,
		Timeout:    cfg.Shopify.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create Shopify client", zap.Error(err))
	}

	wooClient, err := woocommerce.NewClient(&woocommerce.Config{
		BaseURL:        cfg.WooCommerce.BaseURL,
		ConsumerKey:    cfg.WooCommerce.ConsumerKey,
		ConsumerSecret: cfg.WooCommerce.ConsumerSecret,
		APIVersion:     cfg.WooCommerce.APIVersion,
		Timeout:        cfg.WooCommerce.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create WooCommerce client", zap.Error(err))
	}

	dfinClient, err := dfin.NewClient(&dfin.Config{
		BaseURL:       cfg.Dfin.BaseURL,
		PublicKey:     cfg.Dfin.PublicKey,
		SecretKey:     cfg.Dfin.SecretKey,
		WebhookSecret: cfg.Dfin.WebhookSecret,
		Timeout:       cfg.Dfin.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create Dfin client", zap.Error(err))
	}
	webhookVerifier := dfin.NewWebhookVerifier(cfg.Dfin.WebhookSecret)
	shopifyVerifier := shopify.NewWebhookVerifier(cfg.Shopify.WebhookSecret)

	// Initialize application services
	productService := syncapp.NewProductService(productMappingRepo, variantMappingRepo, shopifyClient, wooClient, log)
	orderService := syncapp.NewOrderService(orderMappingRepo, productMappingRepo, variantMappingRepo, shopifyClient, log)
	dispatcher := syncapp.NewDispatcher(productService, orderService, log)
	checkoutService := checkoutapp.NewService(productMappingRepo, wooClient, log)
	paymentService := paymentapp.NewService(shopifyClient, dfinClient, paymentMappingRepo, log)

	tierTable, err := checkoutapp.NewTierTable(cfg.Protection)
	if err != nil {
		log.Fatal("Failed to build protection tier table", zap.Error(err))
	}

	// Initialize handlers
	webhookHandler := handler.NewWebhookHandler(dispatcher, sessionRepo, cfg.Shopify.Shop, log)
	shopifyWebhookHandler := handler.NewShopifyWebhookHandler(productService, shopifyVerifier, log)
	paymentHandler := handler.NewPaymentHandler(paymentService, webhookVerifier, sessionRepo, cfg.Shopify.Shop, log)
	productHandler := handler.NewProductHandler(productService, sessionRepo, cfg.Shopify.Shop, log)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, tierTable, log)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(webhookHandler).
		Register(shopifyWebhookHandler).
		Register(paymentHandler).
		Register(productHandler).
		Register(checkoutHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
