package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/ilindan-dev/fanout-notifier/pkg/keybuilder"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"time"
)

// Ensure DeliveryCache implements the interface
var _ repo.DeliveryCache = (*DeliveryCache)(nil)

// DeliveryCache implements the domain.DeliveryCache interface
// using the standard go-redis client.
type DeliveryCache struct {
	redis  goredis.Cmdable
	logger zerolog.Logger
}

// NewDeliveryCache creates a new instance of the DeliveryCache.
func NewDeliveryCache(logger *zerolog.Logger, redis goredis.Cmdable) *DeliveryCache {
	return &DeliveryCache{
		redis:  redis,
		logger: logger.With().Str("layer", "redis_cache").Logger(),
	}
}

// Get retrieves an item from the cache.
func (c *DeliveryCache) Get(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	key := keybuilder.RedisDeliveryKeyBuild(id)
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			c.logger.Debug().Str("key", key).Str("cache", "miss").Msg("delivery not found in cache")
			return nil, repo.ErrNotFound
		}
		c.logger.Error().Err(err).Str("key", key).Msg("failed to get key from redis")
		return nil, err
	}

	var delivery model.Delivery
	if err := json.Unmarshal([]byte(val), &delivery); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to unmarshal delivery from cache")
		return nil, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	c.logger.Debug().Str("key", key).Str("cache", "hit").Msg("delivery found in cache")
	return &delivery, nil
}

// Set adds an item to the cache for a specified duration.
func (c *DeliveryCache) Set(ctx context.Context, d *model.Delivery, expiration time.Duration) error {
	key := keybuilder.RedisDeliveryKeyBuild(d.ID)
	dBytes, err := json.Marshal(d)
	if err != nil {
		c.logger.Error().Err(err).Stringer("id", d.ID).Msg("failed to marshal delivery for cache")
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}

	if err := c.redis.Set(ctx, key, dBytes, expiration).Err(); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to set key in redis")
		return err
	}

	c.logger.Debug().Str("key", key).Msg("delivery successfully set in cache")
	return nil
}
