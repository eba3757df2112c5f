package main

import (
	"context"
	"time"

	"github.com/iamsashka/Kursach/internal/handler"
	mid "github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/iamsashka/Kursach/internal/session"
	"github.com/iamsashka/Kursach/pkg/config"
	"github.com/iamsashka/Kursach/pkg/database"
	"github.com/iamsashka/Kursach/pkg/jwtutil"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/iamsashka/Kursach/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceName = "clothestore"

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load(serviceName)
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting clothestore",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.User{},
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductColor{},
		&model.ProductTag{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Favorite{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// Redis-backed web sessions
	redisClient := redis.NewClient(&redis.Options{
		Addr:     appConfig.Redis.Addr,
		Password: appConfig.Redis.Password,
		DB:       appConfig.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	sessions := session.NewRedisStore(redisClient)
	log.Info("Redis connection established", zap.String("addr", appConfig.Redis.Addr))

	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      appConfig.JWT.SigningKey,
		ExpirationHours: appConfig.JWT.ExpirationHours,
	})

	// Wire repositories, services and handlers
	store := repository.NewStore(db)

	auditService := service.NewAuditService(store)
	authService := service.NewAuthService(store, jwt, sessions, appConfig.Redis.SessionTTL, auditService)
	userService := service.NewUserService(store, auditService)
	productService := service.NewProductService(store, auditService)
	categoryService := service.NewCategoryService(store, auditService)
	brandService := service.NewBrandService(store, auditService)
	cartService := service.NewCartService(store, appConfig.Checkout)
	checkoutService := service.NewCheckoutService(store, appConfig.Checkout, auditService)
	orderService := service.NewOrderService(store, auditService)
	favoriteService := service.NewFavoriteService(store)
	analyticsService := service.NewAnalyticsService(store)
	importService := service.NewImportService(store, auditService)
	exportService := service.NewExportService(store)

	authHandler := handler.NewAuthHandler(authService, userService, appConfig.Redis.SessionTTL)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	brandHandler := handler.NewBrandHandler(brandService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService, orderService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, exportService)
	importExportHandler := handler.NewImportExportHandler(importService, exportService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Store-level gauges recomputed from the database on a ticker
	stopGauges := make(chan struct{})
	defer close(stopGauges)
	prometheus.StartStoreGauges(appConfig.Metrics.GaugeInterval, func() (prometheus.StoreSnapshot, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var snapshot prometheus.StoreSnapshot
		var err error
		if snapshot.ActiveProducts, err = store.Products().CountActive(ctx); err != nil {
			return snapshot, err
		}
		if snapshot.ActiveUsers, err = store.Users().CountActive(ctx); err != nil {
			return snapshot, err
		}
		if snapshot.Orders, err = store.Orders().CountActive(ctx); err != nil {
			return snapshot, err
		}
		revenue, err := store.Orders().SumRevenue(ctx)
		if err != nil {
			return snapshot, err
		}
		snapshot.Revenue = revenue.InexactFloat64()
		if snapshot.CartItems, err = store.Cart().CountAll(ctx); err != nil {
			return snapshot, err
		}
		return snapshot, nil
	}, stopGauges)

	authenticator := mid.NewAuthenticator(jwt, sessions, store)

	// Echo instance and middleware
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health)

	// Public routes
	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:id", categoryHandler.Get)
	api.GET("/brands", brandHandler.List)
	api.GET("/brands/:id", brandHandler.Get)

	// Authenticated shop surface
	shop := api.Group("", authenticator.Require, mid.RequireCapability(mid.CapShop))
	shop.GET("/auth/me", authHandler.Me)
	shop.GET("/profile", userHandler.Profile)
	shop.PUT("/profile", userHandler.UpdateProfile)
	shop.PUT("/profile/settings", userHandler.UpdateSettings)
	shop.PUT("/profile/filters", userHandler.SaveFilters)

	shop.GET("/cart", cartHandler.List)
	shop.GET("/cart/count", cartHandler.Count)
	shop.POST("/cart", cartHandler.Add)
	shop.PUT("/cart/:id", cartHandler.UpdateQuantity)
	shop.DELETE("/cart/:id", cartHandler.Remove)
	shop.DELETE("/cart", cartHandler.Clear)

	shop.POST("/checkout", orderHandler.PlaceOrder)
	shop.GET("/orders", orderHandler.History)
	shop.GET("/orders/:id", orderHandler.Get)

	shop.GET("/favorites", favoriteHandler.List)
	shop.GET("/favorites/count", favoriteHandler.Count)
	shop.GET("/favorites/status", favoriteHandler.Status)
	shop.POST("/favorites", favoriteHandler.Add)
	shop.POST("/favorites/replace-oldest", favoriteHandler.ReplaceOldest)
	shop.DELETE("/favorites/:id", favoriteHandler.Remove)
	shop.DELETE("/favorites", favoriteHandler.Clear)

	// Catalog management
	catalog := api.Group("/admin", authenticator.Require, mid.RequireCapability(mid.CapCatalogWrite))
	catalog.POST("/products", productHandler.Create)
	catalog.PUT("/products/:id", productHandler.Update)
	catalog.DELETE("/products/:id", productHandler.Delete)
	catalog.POST("/products/:id/restore", productHandler.Restore)
	catalog.GET("/products/archived", productHandler.Archived)

	catalog.POST("/categories", categoryHandler.Create)
	catalog.PUT("/categories/:id", categoryHandler.Update)
	catalog.DELETE("/categories/:id", categoryHandler.Delete)
	catalog.POST("/categories/:id/restore", categoryHandler.Restore)
	catalog.GET("/categories/archived", categoryHandler.Archived)

	catalog.POST("/brands", brandHandler.Create)
	catalog.PUT("/brands/:id", brandHandler.Update)
	catalog.DELETE("/brands/:id", brandHandler.Delete)
	catalog.POST("/brands/:id/restore", brandHandler.Restore)
	catalog.GET("/brands/archived", brandHandler.Archived)

	// Order management
	orders := api.Group("/admin/orders", authenticator.Require, mid.RequireCapability(mid.CapOrdersManage))
	orders.GET("", orderHandler.AdminList)
	orders.GET("/archived", orderHandler.Archived)
	orders.GET("/:id", orderHandler.AdminGet)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)
	orders.DELETE("/:id", orderHandler.Delete)
	orders.POST("/:id/restore", orderHandler.Restore)

	// User management
	users := api.Group("/admin/users", authenticator.Require, mid.RequireCapability(mid.CapUsersManage))
	users.GET("", userHandler.List)
	users.GET("/archived", userHandler.Archived)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id/role", userHandler.ChangeRole)
	users.PUT("/:id/enabled", userHandler.SetEnabled)
	users.DELETE("/:id", userHandler.Delete)
	users.POST("/:id/restore", userHandler.Restore)
	users.DELETE("/:id/permanent", userHandler.HardDelete)

	// Analytics
	analytics := api.Group("/admin/analytics", authenticator.Require, mid.RequireCapability(mid.CapAnalyticsView))
	analytics.GET("", analyticsHandler.Dashboard)
	analytics.GET("/export/csv", analyticsHandler.ExportCSV)

	// Import / export
	imports := api.Group("/admin/import", authenticator.Require, mid.RequireCapability(mid.CapImportRun))
	imports.POST("", importExportHandler.Import)
	imports.GET("/template", importExportHandler.Template)
	imports.GET("/export/products", importExportHandler.ExportProducts)
	imports.GET("/export/orders", importExportHandler.ExportOrders)
	imports.GET("/export/orders/pdf", importExportHandler.ExportOrdersPDF)

	// Audit trail
	audit := api.Group("/admin/audit", authenticator.Require, mid.RequireCapability(mid.CapAuditView))
	audit.GET("", auditHandler.List)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
