// @title                       Tour Agency API
// @version                     1.0
// @description                 Back office and storefront API for a tour agency: catalog, orders, reviews, support tickets and favorites.
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        session
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api"
	"github.com/N1k3YB/turistic-agency-sub002/internal/api/handler"
	"github.com/N1k3YB/turistic-agency-sub002/internal/api/metrics"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/service"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/validation"
	mongodb "github.com/N1k3YB/turistic-agency-sub002/internal/infrastructure/db/mongo"
	redisdb "github.com/N1k3YB/turistic-agency-sub002/internal/infrastructure/db/redis"
	"github.com/N1k3YB/turistic-agency-sub002/internal/pkg/config"
	"github.com/N1k3YB/turistic-agency-sub002/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Level: "error"})
		boot.Fatal().Err(err).Msg("startup failed")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "tour-agency",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	destinations := mongodb.NewDestinationRepository(db)
	tours := mongodb.NewTourRepository(db)
	orders := mongodb.NewOrderRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	tickets := mongodb.NewTicketRepository(db)
	favorites := mongodb.NewFavoriteRepository(db)

	sessions := redisdb.NewSessionStore(rdb)
	demand := redisdb.NewDemandCache(rdb, cfg.RankingCacheTTL, metrics.ObserveDemandCache)
	validate := validation.New()

	e := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(users, sessions, validate, cfg.JWTSecret, cfg.SessionTTL, logger.With("auth")),
		Users:        service.NewUserService(users, sessions, validate, logger.With("users")),
		Destinations: service.NewDestinationService(destinations, tours, reviews, favorites, orders, demand, validate, logger.With("destinations")),
		Tours:        service.NewTourService(tours, destinations, reviews, favorites, orders, demand, validate, logger.With("tours")),
		Orders:       service.NewOrderService(orders, tours, demand, validate, logger.With("orders")),
		Reviews:      service.NewReviewService(reviews, tours, validate, logger.With("reviews")),
		Tickets:      service.NewTicketService(tickets, validate, logger.With("tickets")),
		Favorites:    service.NewFavoriteService(favorites, tours, validate, logger.With("favorites")),
		Stats:        service.NewStatsService(users, destinations, tours, orders, reviews, tickets, demand, logger.With("stats")),

		Validator: validate,
		Cookie:    handler.CookieConfig{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL},
		HealthChecks: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		Log: logger.With("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
