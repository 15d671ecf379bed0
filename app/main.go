package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"example.com/storefront-cart/app/internal/config"
	domcart "example.com/storefront-cart/app/internal/domain/cart"
	domproduct "example.com/storefront-cart/app/internal/domain/product"
	"example.com/storefront-cart/app/internal/infra/i18n"
	"example.com/storefront-cart/app/internal/infra/notify"
	"example.com/storefront-cart/app/internal/infra/persistence"
	"example.com/storefront-cart/app/internal/infra/persistence/mysql"
	"example.com/storefront-cart/app/internal/infra/persistence/slot"
	"example.com/storefront-cart/app/internal/infra/security"
	"example.com/storefront-cart/app/internal/infra/storefront"
	apihttp "example.com/storefront-cart/app/internal/interface/http"
	"example.com/storefront-cart/app/internal/logger"
	cartuc "example.com/storefront-cart/app/internal/usecase/cart"
	sessionuc "example.com/storefront-cart/app/internal/usecase/session"
)

const (
	shutdownTimeout = 10 * time.Second
	evictInterval   = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, closeStore, err := persistence.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("cart storage ready")

	tr, err := i18n.New(cfg.App.DisplayLocale)
	if err != nil {
		return err
	}

	catalog, stock, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCatalog()

	carts := cartuc.NewRegistry(func(sessionID string) domcart.Repository {
		return slot.NewCartRepository(store, slot.SessionKey(cfg.Storage.CartKey, sessionID))
	}, catalog, stock,
		cartuc.WithNotifier(notify.NewLog(log, tr)),
		cartuc.WithLogger(log),
	)

	go carts.RunEvictor(ctx, evictInterval, cfg.Session.IdleTTL)

	api := apihttp.NewAPI(apihttp.Dependencies{
		SessionService: sessionuc.NewService(security.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)),
		Carts:          carts,
		Storage:        store,
		Translator:     tr,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("catalog", cfg.Catalog.Source).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openCatalog(ctx context.Context, cfg *config.Config) (domproduct.Catalog, domproduct.StockSource, func(), error) {
	if cfg.Catalog.Source == "mysql" {
		db, err := mysql.Open(ctx, cfg.Storage.MySQLDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := mysql.NewProductRepository(db)
		return repo, repo, func() { _ = db.Close() }, nil
	}
	client := storefront.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	return client, client, func() {}, nil
}
