// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"course-marketplace/internal/config"
	"course-marketplace/internal/domain/ports/adapter"
	payAdapters "course-marketplace/internal/infra/adapters/payment"
	"course-marketplace/internal/infra/api"
	"course-marketplace/internal/infra/auth"
	pg "course-marketplace/internal/infra/db/postgres"
	"course-marketplace/internal/infra/logging"
	"course-marketplace/internal/infra/metrics"
	red "course-marketplace/internal/infra/redis"
	"course-marketplace/internal/infra/worker"
	"course-marketplace/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop gateway, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	// ---- Metrics ----
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	tm := pg.NewTxManager(pool)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	courseRepo := pg.NewCourseRepoCacheDecorator(pg.NewCourseRepo(pool), redisClient, cfg.Redis.TTL)
	settingsRepo := pg.NewSettingsRepoCacheDecorator(pg.NewSettingsRepo(pool), redisClient, cfg.Redis.PolicyTTL)
	entitlementRepo := pg.NewEntitlementRepo(pool)
	journalRepo := pg.NewJournalRepo(pool)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Runtime.Dev && cfg.Razorpay.KeyID == "" {
		gateway = payAdapters.NewNoopGateway()
		logger.Warn().Msg("payment gateway: noop (dev)")
	} else {
		gateway, err = payAdapters.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.BaseURL)
		if err != nil {
			log.Fatalf("razorpay gateway: %v", err)
		}
	}

	// ---- Use cases ----
	pricingUC := usecase.NewPricingUseCase(courseRepo, logger)
	catalogUC := usecase.NewCatalogUseCase(courseRepo, logger)
	checkoutUC := usecase.NewCheckoutUseCase(pricingUC, gateway, cfg.Razorpay.Currency, logger)
	entitlementUC := usecase.NewEntitlementUseCase(entitlementRepo, settingsRepo, journalRepo, cfg.Razorpay.KeySecret, logger)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, tm, logger)

	// ---- API server ----
	verifier := auth.NewJWTVerifier(cfg.Auth.HMACSecret)
	limiter := api.NewOrderLimiter(rateLimiter, cfg.Limits.OrdersPerMinute)
	srv := api.NewServer(catalogUC, checkoutUC, entitlementUC, settingsUC, verifier, limiter, cfg.Server.Timeout, logger)

	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: srv.Router()}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("api server error")
		}
	}()

	// ---- Admin server (/metrics, /health) ----
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	adminServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.AdminPort), Handler: adminMux}
	go func() {
		logger.Info().Str("addr", adminServer.Addr).Msg("admin listening")
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server error")
		}
	}()

	// ---- Grant reconciler ----
	pool2 := worker.NewPool(4, logger)
	pool2.Start(ctx)
	reconciler := worker.NewReconciler(journalRepo, entitlementRepo, tm, pool2, time.Minute, logger)
	go func() { _ = reconciler.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	_ = adminServer.Shutdown(shutdownCtx)
	pool2.Stop()
}
