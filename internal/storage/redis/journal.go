package redis

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
	"time"
)

// DefaultTTL is used when no positive TTL is configured.
const DefaultTTL = 24 * time.Hour

// Ensure CachedJournal implements the interface
var _ repo.DeliveryJournal = (*CachedJournal)(nil)

// CachedJournal is a decorator for a DeliveryJournal
// that adds a caching layer using Redis.
type CachedJournal struct {
	primary repo.DeliveryJournal
	cache   repo.DeliveryCache
	logger  zerolog.Logger
	ttl     time.Duration
}

// NewCachedJournal creates a new instance of the cached journal.
func NewCachedJournal(
	primary repo.DeliveryJournal,
	cache repo.DeliveryCache,
	ttl time.Duration,
	logger *zerolog.Logger,
) *CachedJournal {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedJournal{
		primary: primary,
		cache:   cache,
		logger:  logger.With().Str("layer", "cached_journal").Logger(),
		ttl:     ttl,
	}
}

// Save first persists the delivery in the primary journal,
// then warms up the cache with the new data.
func (j *CachedJournal) Save(ctx context.Context, d *model.Delivery) error {
	if err := j.primary.Save(ctx, d); err != nil {
		return err
	}

	if err := j.cache.Set(ctx, d, j.ttl); err != nil {
		j.logger.Error().Err(err).Stringer("id", d.ID).Msg("failed to cache delivery after save")
	}
	return nil
}

// GetByID implements the cache-aside pattern.
// It first tries the cache; on a miss it reads the primary journal and caches the result.
func (j *CachedJournal) GetByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	cached, err := j.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, repo.ErrNotFound) {
		j.logger.Error().Err(err).Stringer("id", id).Msg("cache get error, falling back to primary journal")
	}

	primary, err := j.primary.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := j.cache.Set(ctx, primary, j.ttl); err != nil {
		j.logger.Error().Err(err).Stringer("id", primary.ID).Msg("failed to set cache after primary fetch")
	}
	return primary, nil
}

// ListByNotification always reads the primary journal, which owns the ordering.
func (j *CachedJournal) ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]*model.Delivery, error) {
	return j.primary.ListByNotification(ctx, notificationID)
}
