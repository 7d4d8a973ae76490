package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	integrationapp "github.com/erp/syncbridge/internal/application/integration"
	"github.com/erp/syncbridge/internal/domain/integration"
	"github.com/erp/syncbridge/internal/domain/shared"
	"github.com/erp/syncbridge/internal/infrastructure/cache"
	"github.com/erp/syncbridge/internal/infrastructure/config"
	"github.com/erp/syncbridge/internal/infrastructure/logger"
	"github.com/erp/syncbridge/internal/infrastructure/odoo"
	"github.com/erp/syncbridge/internal/infrastructure/prestashop"
	"github.com/erp/syncbridge/internal/infrastructure/scheduler"
	"github.com/erp/syncbridge/internal/infrastructure/telemetry"
	"github.com/erp/syncbridge/internal/interfaces/http/handler"
	"github.com/erp/syncbridge/internal/interfaces/http/middleware"
	"github.com/erp/syncbridge/internal/interfaces/http/router"
)

//	@title			ERP Sync Bridge API
//	@version		1.0
//	@description	Catalog, stock and order bridge between an Odoo ERP and a PrestaShop storefront

//	@BasePath	/api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.App, cfg.Log), cfg.App.Name)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ERP sync bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("odoo_configured", cfg.Odoo.IsConfigured()),
		zap.Bool("prestashop_configured", cfg.PrestaShop.IsConfigured()),
	)

	ctx := context.Background()

	// Telemetry
	otelProviders, err := telemetry.Setup(ctx, telemetry.Config{
		TracingEnabled:    cfg.Telemetry.Enabled,
		MetricsEnabled:    cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := otelProviders.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	syncMetrics, err := telemetry.NewSyncMetrics(telemetry.SyncMetricsConfig{
		Meter:  otelProviders.Meter(cfg.Telemetry.ServiceName),
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to initialize sync metrics", zap.Error(err))
	}

	// SKU claims
	claims, err := cache.NewClaimStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create SKU claim store", zap.Error(err))
	}
	defer func() {
		if err := claims.Close(); err != nil {
			log.Error("Error closing SKU claim store", zap.Error(err))
		}
	}()

	// Upstream adapters
	erpClient := odoo.NewClient(odoo.FromAppConfig(cfg.Odoo), odoo.WithLogger(log))
	storefrontClient := prestashop.NewClient(prestashop.FromAppConfig(cfg.PrestaShop), prestashop.WithLogger(log))

	// Application services
	catalogSync := integrationapp.NewCatalogSyncService(erpClient, storefrontClient, claims, integrationapp.CatalogSyncConfig{
		Claims: shared.ClaimConfig{
			Enabled: cfg.Sync.ClaimsEnabled,
			TTL:     cfg.Sync.ClaimTTL,
		},
		SingleItemTimeout: cfg.Sync.SingleItemTimeout,
	}, log)
	catalogSync.SetSyncMetrics(syncMetrics)

	erpSync := integrationapp.NewERPSyncService(erpClient, storefrontClient, log)
	erpSync.SetSyncMetrics(syncMetrics)

	storefrontQueries := integrationapp.NewStorefrontQueryService(storefrontClient, storefrontClient)
	erpQueries := integrationapp.NewERPQueryService(erpClient, erpClient)
	productStatuses := integrationapp.NewProductStatusService(storefrontClient, log)

	// Periodic reconciliation
	syncScheduler, err := scheduler.NewSyncScheduler(scheduler.SchedulerConfig{
		Enabled:    cfg.Scheduler.Enabled,
		JobTimeout: cfg.Scheduler.JobTimeout,
		RunOnStart: cfg.Scheduler.RunOnStart,
	}, log,
		scheduler.CatalogSyncTask(cfg.Scheduler.CatalogInterval, catalogSync),
		scheduler.ERPDriftTask(cfg.Scheduler.DriftInterval, erpSync),
	)
	if err != nil {
		log.Fatal("Failed to create sync scheduler", zap.Error(err))
	}
	if err := syncScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start sync scheduler", zap.Error(err))
	}

	// HTTP handlers
	erpHandler := handler.NewERPHandler(erpQueries)
	storefrontHandler := handler.NewStorefrontHandler(storefrontQueries, productStatuses, cfg.Sync.Locale)
	syncHandler := handler.NewSyncHandler(catalogSync, erpSync)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, cfg.App.Env, map[integration.System]any{
		integration.SystemERP:        erpClient,
		integration.SystemStorefront: storefrontClient,
	})
	systemHandler.SetJobSource(syncScheduler)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so every later layer can read it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		SkipPaths:   []string{"/health"},
	}))
	engine.Use(middleware.SpanErrorMarker())
	if otelProviders.MetricsEnabled() {
		engine.Use(middleware.HTTPMetrics(otelProviders.Meter("http.server"), log))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        middleware.DefaultCORSConfig().MaxAge,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", systemHandler.Health)

	routes := router.New(engine).Add(router.Bridge(router.Handlers{
		ERP:        erpHandler,
		Storefront: storefrontHandler,
		Sync:       syncHandler,
		System:     systemHandler,
	})...).Mount()
	log.Info("Routes mounted", zap.Int("count", len(routes)))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	if err := syncScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping sync scheduler", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
