package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suratdiamond/storefront/internal/api"
	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/identity"
	"github.com/suratdiamond/storefront/internal/payment"
	"github.com/suratdiamond/storefront/internal/repository/postgres"
	"github.com/suratdiamond/storefront/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := postgres.NewRepositories(db, logger)

	authenticator := identity.NewAuthenticator(identity.NewProvider(cfg.Supabase, logger), logger)
	pricer := service.NewCartPricer(repos.Product, logger)
	sessions := service.NewSessionBuilder(payment.NewStripeClient(cfg.Stripe, logger), cfg.Checkout, logger)
	products := service.NewProductService(repos.Product, logger)

	router := api.NewRouter(cfg, &api.Services{
		Auth:      authenticator,
		Roles:     repos.UserRole,
		Checkout:  service.NewCheckoutService(authenticator, pricer, sessions, logger),
		WhatsApp:  service.NewWhatsAppService(pricer, cfg.WhatsApp, logger),
		Catalog:   products,
		Products:  products,
		Orders:    service.NewOrderService(repos.Order, logger),
		Wishlist:  service.NewWishlistService(repos.Wishlist, repos.Product, logger),
		Analytics: service.NewAnalyticsService(repos.Analytics, cfg.Analytics, logger),
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Storefront API starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("auth_mode", cfg.Supabase.AuthMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
