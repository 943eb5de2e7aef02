package memory

import (
	"context"
	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"sync"
)

// Ensure Journal implements the interface
var _ repo.DeliveryJournal = (*Journal)(nil)

// Journal is a process-local DeliveryJournal. Records are lost on restart.
type Journal struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.Delivery
	ordered []uuid.UUID
}

// NewJournal creates an empty in-memory journal.
func NewJournal() *Journal {
	return &Journal{
		byID: make(map[uuid.UUID]model.Delivery),
	}
}

// Save records a copy of the delivery.
func (j *Journal) Save(_ context.Context, d *model.Delivery) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.byID[d.ID]; ok {
		return repo.ErrDuplicateRecord
	}
	j.byID[d.ID] = *d
	j.ordered = append(j.ordered, d.ID)
	return nil
}

// GetByID retrieves a delivery by its unique ID.
func (j *Journal) GetByID(_ context.Context, id uuid.UUID) (*model.Delivery, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	d, ok := j.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &d, nil
}

// ListByNotification returns the deliveries of a notification in the order they were saved.
func (j *Journal) ListByNotification(_ context.Context, notificationID uuid.UUID) ([]*model.Delivery, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*model.Delivery, 0)
	for _, id := range j.ordered {
		d := j.byID[id]
		if d.NotificationID == notificationID {
			out = append(out, &d)
		}
	}
	return out, nil
}
