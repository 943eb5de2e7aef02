package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeDB struct {
	execErr error
	execSQL string
	row     pgx.Row
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = sql
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row { return f.row }

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestSaveMapsUniqueViolation(t *testing.T) {
	db := &fakeDB{execErr: &pgconn.PgError{Code: pgerrcode.UniqueViolation}}
	j := NewJournal(db, nopLogger())

	err := j.Save(context.Background(), model.NewDelivery(model.NewNotification("r", "c"), model.MediumSMS, "c"))
	assert.ErrorIs(t, err, repo.ErrDuplicateRecord)
	assert.Equal(t, insertDelivery, db.execSQL)
}

func TestSaveWrapsOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	j := NewJournal(&fakeDB{execErr: boom}, nopLogger())

	err := j.Save(context.Background(), model.NewDelivery(model.NewNotification("r", "c"), model.MediumSMS, "c"))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, repo.ErrDuplicateRecord)
}

func TestGetByIDNotFound(t *testing.T) {
	row := fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}
	j := NewJournal(&fakeDB{row: row}, nopLogger())

	_, err := j.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestGetByIDScansRow(t *testing.T) {
	id, notificationID := uuid.New(), uuid.New()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	row := fakeRow{scan: func(dest ...any) error {
		*dest[0].(*pgtype.UUID) = pgtype.UUID{Bytes: id, Valid: true}
		*dest[1].(*pgtype.UUID) = pgtype.UUID{Bytes: notificationID, Valid: true}
		*dest[2].(*string) = "sms"
		*dest[3].(*string) = "+15550100"
		*dest[4].(*string) = "hello"
		*dest[5].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: at, Valid: true}
		return nil
	}}
	j := NewJournal(&fakeDB{row: row}, nopLogger())

	d, err := j.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, &model.Delivery{
		ID:             id,
		NotificationID: notificationID,
		Medium:         model.MediumSMS,
		Recipient:      "+15550100",
		Content:        "hello",
		DeliveredAt:    at,
	}, d)
}

func TestNewPoolRequiresDSN(t *testing.T) {
	_, err := NewPool(context.Background(), config.PostgresConfig{}, nopLogger())
	assert.Error(t, err)
}

// TestJournalAgainstDatabase runs only when POSTGRES_TEST_DSN points to a disposable database.
func TestJournalAgainstDatabase(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()

	pool, err := NewPool(ctx, config.PostgresConfig{DSN: dsn}, nopLogger())
	require.NoError(t, err)
	defer pool.Close()

	j := NewJournal(pool, nopLogger())
	n := model.NewNotification("user@example.com", "Your appointment is confirmed!")
	media := []model.Medium{model.MediumEmail, model.MediumSMS, model.MediumPush, model.MediumWhatsApp}
	var first *model.Delivery
	for _, m := range media {
		d := model.NewDelivery(n, m, n.Content)
		if first == nil {
			first = d
		}
		require.NoError(t, j.Save(ctx, d))
	}

	assert.ErrorIs(t, j.Save(ctx, first), repo.ErrDuplicateRecord)

	got, err := j.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Content, got.Content)

	list, err := j.ListByNotification(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, list, len(media))
	for i, d := range list {
		assert.Equal(t, media[i], d.Medium)
	}
}
