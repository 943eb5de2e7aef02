package notifiers

import (
	"context"
	"errors"
	"fmt"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	"github.com/rs/zerolog"
	"reflect"
)

// ErrInvalidConfiguration is returned when the channel sequence cannot be built.
var ErrInvalidConfiguration = errors.New("invalid notifier configuration")

// Ensure Dispatcher implements the interface
var _ Notifier = (*Dispatcher)(nil)

// Dispatcher is a composite notifier that fans a notification out to every configured channel.
// It implements the Notifier interface itself.
type Dispatcher struct {
	channels []Notifier
	logger   zerolog.Logger
}

// NewDispatcher creates a new Dispatcher over an ordered sequence of channels.
// The sequence order is the invocation order. A nil sequence or a nil entry is rejected;
// an empty sequence is accepted and turns Send into a no-op.
func NewDispatcher(channels []Notifier, logger *zerolog.Logger) (*Dispatcher, error) {
	log := logger.With().Str("component", "dispatcher").Logger()

	if channels == nil {
		log.Error().Msg("channel sequence is nil")
		return nil, fmt.Errorf("%w: channel sequence is nil", ErrInvalidConfiguration)
	}
	for i, ch := range channels {
		if isNil(ch) {
			log.Error().Int("position", i).Msg("channel sequence contains a nil channel")
			return nil, fmt.Errorf("%w: channel at position %d is nil", ErrInvalidConfiguration, i)
		}
	}

	owned := make([]Notifier, len(channels))
	copy(owned, channels)

	log.Info().Int("channels", len(owned)).Msg("dispatcher initialized")
	return &Dispatcher{
		channels: owned,
		logger:   log,
	}, nil
}

// Send implements the Notifier interface. It calls every channel in order on the caller's goroutine.
// The first failing channel stops the fan-out: its error is returned and the remaining channels are not called.
func (d *Dispatcher) Send(ctx context.Context, n model.Notification) error {
	log := d.logger.With().Stringer("notification_id", n.ID).Logger()

	for i, ch := range d.channels {
		name := channelName(ch)
		if err := ch.Send(ctx, n); err != nil {
			log.Error().Err(err).Str("channel", name).Int("position", i).Msg("channel failed, remaining channels skipped")
			return fmt.Errorf("channel %s: %w", name, err)
		}
		log.Debug().Str("channel", name).Int("position", i).Msg("channel delivered")
	}

	log.Info().Int("channels", len(d.channels)).Msg("notification dispatched")
	return nil
}

func channelName(ch Notifier) string {
	if nm, ok := ch.(named); ok {
		return string(nm.Medium())
	}
	return fmt.Sprintf("%T", ch)
}

// isNil reports a nil entry, including a nil pointer wrapped in the interface.
func isNil(ch Notifier) bool {
	if ch == nil {
		return true
	}
	v := reflect.ValueOf(ch)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
