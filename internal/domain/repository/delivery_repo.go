package repository

import (
	"context"
	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	"time"
)

// DeliveryJournal defines the contract for recording delivery events (e.g., a database).
type DeliveryJournal interface {
	// Save records a delivery event.
	Save(ctx context.Context, d *model.Delivery) error

	// GetByID retrieves a delivery event by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error)

	// ListByNotification returns the delivery events of a notification in the order they were recorded.
	ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]*model.Delivery, error)
}

// DeliveryCache defines the contract for a caching layer.
type DeliveryCache interface {
	// Get retrieves an item from the cache.
	Get(ctx context.Context, id uuid.UUID) (*model.Delivery, error)

	// Set adds an item to the cache for a specified duration
	Set(ctx context.Context, d *model.Delivery, expiration time.Duration) error
}
