package notifiers

import (
	"context"
	"fmt"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Sink is the output a channel emits its delivery events to.
type Sink interface {
	Deliver(ctx context.Context, d *model.Delivery) error
}

// LogSink is a mock transport that implements the Sink interface.
// It simply logs the delivery instead of handing it to a real provider.
// This is the default for every channel in "log_only" mode.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a new instance of LogSink.
func NewLogSink(logger *zerolog.Logger) *LogSink {
	return &LogSink{
		logger: logger.With().Str("component", "log_sink").Logger(),
	}
}

// Deliver implements the Sink interface.
func (s *LogSink) Deliver(_ context.Context, d *model.Delivery) error {
	s.logger.Info().
		Stringer("notification_id", d.NotificationID).
		Stringer("delivery_id", d.ID).
		Str("channel", string(d.Medium)).
		Str("recipient", d.Recipient).
		Str("content", d.Content).
		Msgf("sending %s to %s", d.Medium, d.Recipient)

	return nil
}

// JournalSink delivers through the wrapped sink and then records the event in the journal.
// Nothing is recorded when the wrapped sink fails.
type JournalSink struct {
	next    Sink
	journal repo.DeliveryJournal
	logger  zerolog.Logger
}

// NewJournalSink creates a new instance of JournalSink.
func NewJournalSink(next Sink, journal repo.DeliveryJournal, logger *zerolog.Logger) *JournalSink {
	return &JournalSink{
		next:    next,
		journal: journal,
		logger:  logger.With().Str("component", "journal_sink").Logger(),
	}
}

// Deliver implements the Sink interface.
func (s *JournalSink) Deliver(ctx context.Context, d *model.Delivery) error {
	if err := s.next.Deliver(ctx, d); err != nil {
		return err
	}

	if err := s.journal.Save(ctx, d); err != nil {
		s.logger.Error().Err(err).Stringer("delivery_id", d.ID).Msg("failed to record delivery")
		return fmt.Errorf("failed to record delivery: %w", err)
	}

	return nil
}
