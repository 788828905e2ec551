// Package main is the entry point for the FerroPOS API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ferropos/internal/config"
	"ferropos/internal/domain/auth"
	"ferropos/internal/domain/catalog"
	"ferropos/internal/domain/reports"
	"ferropos/internal/domain/sales"
	"ferropos/internal/infrastructure/cache"
	v1 "ferropos/internal/infrastructure/http/v1"
	"ferropos/internal/infrastructure/storage/postgres"
	"ferropos/internal/infrastructure/storage/postgres/auth_repo"
	"ferropos/internal/infrastructure/storage/postgres/catalog_repo"
	"ferropos/internal/infrastructure/storage/postgres/report_repo"
	"ferropos/internal/infrastructure/storage/postgres/sales_repo"
	"ferropos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting ferropos server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.PGDSN)
	poolCfg.MaxConns = cfg.PGMaxConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool.Unwrap()); err != nil {
		log.Fatalw("failed to apply migrations", "error", err)
	}
	log.Info("database ready")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	ledgerRepo := sales_repo.NewLedgerRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Report cache ---
	var reportCache reports.Cache
	var invalidator sales.ReportInvalidator
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisReportCache(cfg.RedisAddr, cfg.ReportCacheTTL)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warnw("redis unreachable, report caching disabled", "addr", cfg.RedisAddr, "error", err)
			reportCache = cache.NoopReportCache{}
			invalidator = cache.NoopReportCache{}
		} else {
			defer redisCache.Close()
			reportCache = redisCache
			invalidator = redisCache
			log.Infow("report cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.ReportCacheTTL)
		}
	} else {
		reportCache = cache.NoopReportCache{}
		invalidator = cache.NoopReportCache{}
	}

	// --- Services ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.JWTTTL
	jwtService := auth.NewJWTService(jwtConfig)

	authService := auth.NewService(userRepo, txManager, jwtService, auth.DefaultServiceConfig())
	catalogService := catalog.NewService(productRepo, txManager, auditService, invalidator)
	salesService := sales.NewService(ledgerRepo, productRepo, txManager, auditService, invalidator)
	reportService := reports.NewService(reportRepo, productRepo, reportCache)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:              pool,
		Logger:            log,
		JWTValidator:      jwtService,
		AuthService:       authService,
		CatalogService:    catalogService,
		SalesService:      salesService,
		ReportService:     reportService,
		AuditReader:       auditService,
		LowStockThreshold: cfg.LowStockThreshold,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
