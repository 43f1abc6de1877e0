package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/meal-planner/internal/config"
	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/handler"
	"github.com/iliyamo/meal-planner/internal/logging"
	"github.com/iliyamo/meal-planner/internal/middleware"
	"github.com/iliyamo/meal-planner/internal/queue"
	"github.com/iliyamo/meal-planner/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// runServe starts the pool and the HTTP server and blocks until ctx is
// cancelled. A pool that fails to start leaves the server up in degraded
// mode; database routes then answer 500.
func runServe(ctx context.Context) error {
	log := logging.L()

	pool := database.NewPool(cfg.DB)
	if err := pool.Initialize(ctx); err != nil {
		log.Warn().Msg("serving without a database; check-db-connection will report unable to connect")
	}

	rdb := config.NewRedisClient(cfg.Redis)
	cache := middleware.NewResponseCache(cfg.Cache, rdb)
	h := handler.New(pool, queue.NewPublisher(cfg.Queue), cache)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(logging.EchoMiddleware(*log))
	router.Register(e, h, router.Options{
		Cache:       cache,
		RateLimit:   middleware.NewTokenBucket(cfg.RateLimit, rdb),
		AdminSecret: cfg.Admin.JWTSecret,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// echo and the pool share one grace period
	var deadline time.Time
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Dur("grace", cfg.ShutdownGrace).Msg("shutting down")
		deadline = time.Now().Add(cfg.ShutdownGrace)
		sctx, cancel := context.WithDeadline(context.Background(), deadline)
		defer cancel()
		return e.Shutdown(sctx)
	})
	srvErr := g.Wait()

	poolErr := pool.Shutdown(remaining(deadline))
	if poolErr != nil {
		log.Error().Err(poolErr).Msg("pool shutdown incomplete")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return errors.Join(srvErr, poolErr)
}

// remaining is the time left until deadline, never negative.
func remaining(deadline time.Time) time.Duration {
	if d := time.Until(deadline); d > 0 {
		return d
	}
	return 0
}
