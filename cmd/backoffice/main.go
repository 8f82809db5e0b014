// Command backoffice serves the authentication and route gating API of the
// logistics backoffice.
//
// @title                       Backoffice Auth API
// @version                     1.0
// @description                 Sign-in, registration and session gating for the logistics backoffice.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"golang.org/x/sync/errgroup"

	_ "github.com/99minutos/backoffice/docs"
	"github.com/99minutos/backoffice/internal/api"
	"github.com/99minutos/backoffice/internal/api/handler"
	"github.com/99minutos/backoffice/internal/core/guard"
	"github.com/99minutos/backoffice/internal/core/service"
	"github.com/99minutos/backoffice/internal/core/validation"
	mongostore "github.com/99minutos/backoffice/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/backoffice/internal/infrastructure/db/redis"
	"github.com/99minutos/backoffice/internal/infrastructure/queue"
	"github.com/99minutos/backoffice/internal/infrastructure/security"
	"github.com/99minutos/backoffice/internal/pkg/config"
	"github.com/99minutos/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "backoffice",
	})

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "backoffice",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect error")
		}
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
	}()

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, mongostore.NewAuditRepository(db), logger.Component("audit"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Core ---
	validator := validation.New()
	sessions := security.NewTokenSessions(
		cfg.Auth.JWTSecret,
		cfg.Auth.SessionTTL,
		redisstore.NewSessionStore(rdb, cfg.Redis.SessionPrefix),
	)
	directory := mongostore.NewPrincipalRepository(db)
	authService := service.NewAuthService(
		directory,
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		sessions,
		validator,
		dispatcher,
		logger.Component("auth"),
		service.AuthOptions{LandingPath: cfg.Routes.DefaultLanding},
	)

	table := guard.DefaultTable()
	table.DefaultLanding = cfg.Routes.DefaultLanding
	table.SignIn = cfg.Routes.SignIn
	table.Forbidden = cfg.Routes.Forbidden

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Directory: service.NewDirectoryService(directory),
		Sessions:  sessions,
		Validator: validator,
		Guard:     guard.New(table),
		Cookie: handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Domain: cfg.Auth.CookieDomain,
			Secure: cfg.Auth.CookieSecure,
		},
		Checks: []handler.DependencyCheck{handler.MongoCheck(db), handler.RedisCheck(rdb)},
		Log:    logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server exited cleanly")
	return nil
}
