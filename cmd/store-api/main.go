package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jcmexdev/menswear-store/internal/coordinator"
	sagasqlite "github.com/jcmexdev/menswear-store/internal/coordinator/sagalog/sqlite"
	"github.com/jcmexdev/menswear-store/internal/pkg/cache"
	"github.com/jcmexdev/menswear-store/internal/pkg/config"
	"github.com/jcmexdev/menswear-store/internal/pkg/seed"
	"github.com/jcmexdev/menswear-store/internal/pkg/telemetry"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
	"github.com/jcmexdev/menswear-store/internal/store/infra/adapters/mailer"
	"github.com/jcmexdev/menswear-store/internal/store/infra/adapters/payments"
	"github.com/jcmexdev/menswear-store/internal/store/infra/httpx"
	"github.com/jcmexdev/menswear-store/internal/store/infra/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.ServiceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	if err := run(ctx, cfg); err != nil {
		slog.Error("store api stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return err
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sagaLog, err := sagasqlite.NewRepository(store.DB())
	if err != nil {
		return err
	}

	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		if _, err := seed.Apply(ctx, store, f); err != nil {
			return err
		}
	}

	var productCache ports.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
		slog.Info("product cache enabled", "redis_addr", cfg.RedisAddr, "ttl", cfg.ProductCacheTTL)
	}

	card := payments.NewSandboxCard(cfg.Card.PublicKey)
	if cfg.Card.SecretKey != "" {
		card = payments.NewCardClient(cfg.Card, cfg.PaymentTimeout)
	} else {
		slog.Warn("CARD_SECRET_KEY not set, using the sandbox card rail")
	}
	mobile := payments.NewSandboxMobileMoney(cfg.MobileMoney.PublicKey)
	if cfg.MobileMoney.ClientID != "" {
		mobile = payments.NewMobileMoneyClient(cfg.MobileMoney, cfg.PaymentTimeout)
	} else {
		slog.Warn("MOBILE_CLIENT_ID not set, using the sandbox mobile-money rail")
	}

	catalog := services.NewCatalog(store, productCache, cfg.ProductCacheTTL)
	customers := services.NewCustomers(store, 0)
	carts := services.NewCartEngine(store)
	orders := services.NewOrderEngine(store)
	pay := services.NewPayments(store, card, mobile, cfg.Card.Currency)

	handler := httpx.NewHandler(httpx.Services{
		Catalog:   catalog,
		Ratings:   services.NewRatings(store, catalog),
		Customers: customers,
		Carts:     carts,
		Orders:    orders,
		Payments:  pay,
		Mail:      services.NewMail(mailer.NewSMTPMailer(cfg.SMTP)),
		Purchases: coordinator.NewPurchaser(carts, pay, orders, sagaLog),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpx.NewRouter(handler, customers, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("store api running", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
