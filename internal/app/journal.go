package app

import (
	"context"
	"fmt"
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/ilindan-dev/fanout-notifier/internal/storage/memory"
	"github.com/ilindan-dev/fanout-notifier/internal/storage/postgres"
	"github.com/ilindan-dev/fanout-notifier/internal/storage/redis"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"time"
)

// connectTimeout bounds the startup connection to PostgreSQL and Redis.
const connectTimeout = 10 * time.Second

// NewDeliveryJournal selects the journal backend from the configuration and,
// when a Redis address is set, decorates it with the cache-aside layer.
// Connections are closed when the application stops.
func NewDeliveryJournal(lc fx.Lifecycle, cfg *config.Config, logger *zerolog.Logger) (repo.DeliveryJournal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var journal repo.DeliveryJournal
	switch cfg.Journal.Backend {
	case "", "memory":
		journal = memory.NewJournal()
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(pool.Close))
		journal = postgres.NewJournal(pool, logger)
	default:
		return nil, fmt.Errorf("unknown journal backend: %s", cfg.Journal.Backend)
	}
	logger.Info().Str("backend", cfg.Journal.Backend).Msg("delivery journal initialized")

	if cfg.Redis.Addr == "" {
		return journal, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis delivery cache enabled")

	return redis.NewCachedJournal(journal, redis.NewDeliveryCache(logger, client), cfg.Redis.TTL, logger), nil
}
