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

	fulfillmentapp "github.com/khallark/studio-sub002/internal/application/fulfillment"
	warehouseapp "github.com/khallark/studio-sub002/internal/application/warehouse"
	"github.com/khallark/studio-sub002/internal/infrastructure/auth"
	"github.com/khallark/studio-sub002/internal/infrastructure/config"
	"github.com/khallark/studio-sub002/internal/infrastructure/courier"
	"github.com/khallark/studio-sub002/internal/infrastructure/logger"
	"github.com/khallark/studio-sub002/internal/infrastructure/persistence"
	"github.com/khallark/studio-sub002/internal/interfaces/http/handler"
	"github.com/khallark/studio-sub002/internal/interfaces/http/middleware"
	"github.com/khallark/studio-sub002/internal/interfaces/http/router"
)

//	@title			Fulfillment Core API
//	@version		1.0
//	@description	Multi-tenant order fulfillment core: stock allocation, order lifecycle and bulk multi-store operations

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting fulfillment core",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Repositories
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	stockUnitRepo := persistence.NewGormStockUnitRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	mappingRepo := persistence.NewGormProductMappingRepository(db.DB)

	// Collaborator gateways
	gateway := courier.NewHTTPGateway(cfg.Courier, log)

	// Application services
	locationService := warehouseapp.NewLocationService(locationRepo, log)
	putAwayService := warehouseapp.NewPutAwayService(locationRepo, stockUnitRepo, log)
	pickService := warehouseapp.NewPickService(orderRepo, stockUnitRepo, mappingRepo, log)
	orderService := fulfillmentapp.NewOrderService(orderRepo, log)
	statusService := fulfillmentapp.NewStatusService(orderRepo, stockUnitRepo, gateway, gateway, log)
	bulkService := fulfillmentapp.NewBulkService(orderRepo, statusService, log)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	// Open routes (health) and authenticated routes
	open := router.NewRouter(engine)
	open.Register(handler.NewSystemHandler(db))
	open.Setup()

	api := router.NewRouter(engine, router.WithMiddleware(middleware.JWTAuth(jwtService)))
	api.Register(handler.NewWarehouseHandler(putAwayService)).
		Register(handler.NewLocationHandler(locationService)).
		Register(handler.NewOrderHandler(orderService, statusService, bulkService, pickService))
	api.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
