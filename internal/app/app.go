// Package app wires configuration, storage, services and the HTTP transport
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lemarche/marketplace-backend/internal/adapter/geocoding"
	"github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	perimeterrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/perimeter"
	sectorrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/sector"
	siaerepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/siae"
	tenderrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/tender"
	tokenrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/token"
	userrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/user"
	"github.com/lemarche/marketplace-backend/internal/auth"
	"github.com/lemarche/marketplace-backend/internal/config"
	authsvc "github.com/lemarche/marketplace-backend/internal/service/auth"
	siaesvc "github.com/lemarche/marketplace-backend/internal/service/siae"
	tendersvc "github.com/lemarche/marketplace-backend/internal/service/tender"
	"github.com/lemarche/marketplace-backend/internal/transport/middleware"
	"github.com/lemarche/marketplace-backend/internal/transport/rest"
)

const rateLimitPerMinute = 300

// App is the assembled HTTP server and its dependencies.
type App struct {
	log     *slog.Logger
	cfg     *config.Config
	server  *http.Server
	cleanup []func()
}

// New loads configuration, connects to PostgreSQL and builds the full
// handler chain.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	siaes := siaerepo.New(pool)
	sectors := sectorrepo.New(pool)
	perimeters := perimeterrepo.New(pool)
	tenders := tenderrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	geocoder := geocoding.NewWithURL(cfg.Geocoding.BaseURL, cfg.Geocoding.Timeout, logger)

	authService := authsvc.NewService(logger, users, tokens, jwtManager, cfg.Auth)
	tenderService := tendersvc.NewService(logger, tenders, sectors, perimeters, txm)
	siaeService := siaesvc.NewService(logger, siaes, perimeters)

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
		Auth:    rest.NewAuthHandler(authService, logger),
		Tender:  rest.NewTenderHandler(tenderService, logger),
		Siae:    rest.NewSiaeHandler(siaeService, logger),
		Address: rest.NewAddressHandler(geocoder),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(rateLimitPerMinute),
		middleware.Auth(authService),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      chain(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		log:     logger,
		cfg:     cfg,
		server:  server,
		cleanup: []func(){limiter.Stop, pool.Close},
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening",
			slog.String("addr", a.server.Addr),
			slog.String("version", BuildVersion()))
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) close() {
	for _, fn := range a.cleanup {
		fn()
	}
}
