package postgres

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
)

const (
	insertDelivery = `INSERT INTO deliveries (id, notification_id, medium, recipient, content, delivered_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectDeliveryByID = `SELECT id, notification_id, medium, recipient, content, delivered_at
FROM deliveries WHERE id = $1`

	selectDeliveriesByNotification = `SELECT id, notification_id, medium, recipient, content, delivered_at
FROM deliveries WHERE notification_id = $1 ORDER BY seq`
)

// querier is the subset of *pgxpool.Pool the journal needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure Journal implements the interface
var _ repo.DeliveryJournal = (*Journal)(nil)

// Journal implements the domain.repository.DeliveryJournal interface
// using PostgreSQL as a backend.
type Journal struct {
	db     querier
	logger zerolog.Logger
}

// NewJournal creates a new instance of the Journal. db is usually a *pgxpool.Pool.
func NewJournal(db querier, logger *zerolog.Logger) *Journal {
	return &Journal{
		db:     db,
		logger: logger.With().Str("layer", "postgres_journal").Logger(),
	}
}

// Save persists a delivery event.
func (j *Journal) Save(ctx context.Context, d *model.Delivery) error {
	_, err := j.db.Exec(ctx, insertDelivery,
		pgtype.UUID{Bytes: d.ID, Valid: true},
		pgtype.UUID{Bytes: d.NotificationID, Valid: true},
		string(d.Medium),
		d.Recipient,
		d.Content,
		pgtype.Timestamptz{Time: d.DeliveredAt, Valid: true},
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return repo.ErrDuplicateRecord
		}
		j.logger.Err(err).Stringer("id", d.ID).Msg("cannot save delivery")
		return fmt.Errorf("postgres: SaveDelivery failed: %w", err)
	}
	return nil
}

// GetByID retrieves a delivery event by its unique ID.
func (j *Journal) GetByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	row := j.db.QueryRow(ctx, selectDeliveryByID, pgtype.UUID{Bytes: id, Valid: true})

	d, err := scanDelivery(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			j.logger.Warn().Stringer("id", id).Msg("delivery not found by id")
			return nil, repo.ErrNotFound
		}
		j.logger.Err(err).Str("method", "GetByID").Msg("cannot get delivery")
		return nil, fmt.Errorf("postgres: GetDeliveryByID failed: %w", err)
	}
	return d, nil
}

// ListByNotification returns the deliveries of a notification in insertion order.
func (j *Journal) ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]*model.Delivery, error) {
	rows, err := j.db.Query(ctx, selectDeliveriesByNotification, pgtype.UUID{Bytes: notificationID, Valid: true})
	if err != nil {
		j.logger.Err(err).Stringer("notification_id", notificationID).Msg("cannot list deliveries")
		return nil, fmt.Errorf("postgres: ListDeliveries failed: %w", err)
	}

	deliveries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Delivery, error) {
		return scanDelivery(row)
	})
	if err != nil {
		j.logger.Err(err).Stringer("notification_id", notificationID).Msg("cannot scan deliveries")
		return nil, fmt.Errorf("postgres: ListDeliveries failed: %w", err)
	}
	return deliveries, nil
}

// === Mapper Functions ===

// scanDelivery converts a database row to a domain model.
func scanDelivery(row pgx.Row) (*model.Delivery, error) {
	var (
		id, notificationID pgtype.UUID
		medium             string
		d                  model.Delivery
		deliveredAt        pgtype.Timestamptz
	)
	if err := row.Scan(&id, &notificationID, &medium, &d.Recipient, &d.Content, &deliveredAt); err != nil {
		return nil, err
	}
	d.ID = id.Bytes
	d.NotificationID = notificationID.Bytes
	d.Medium = model.Medium(medium)
	d.DeliveredAt = deliveredAt.Time.UTC()
	return &d, nil
}
