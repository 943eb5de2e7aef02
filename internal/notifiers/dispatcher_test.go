package notifiers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ilindan-dev/fanout-notifier/internal/config"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	"github.com/ilindan-dev/fanout-notifier/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingNotifier always fails and counts its calls.
type failingNotifier struct {
	err   error
	calls int
}

func (f *failingNotifier) Send(context.Context, model.Notification) error {
	f.calls++
	return f.err
}

func defaultChannels(sink Sink) []Notifier {
	return []Notifier{
		NewEmailNotifier(sink),
		NewSMSNotifier(sink),
		NewPushNotifier(sink),
		NewWhatsAppNotifier(sink),
	}
}

func TestNewDispatcherRejectsNilSequence(t *testing.T) {
	d, err := NewDispatcher(nil, nopLogger())
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewDispatcherRejectsNilChannel(t *testing.T) {
	sink := &recordingSink{}

	tests := []struct {
		name     string
		channels []Notifier
		position string
	}{
		{name: "nil interface", channels: []Notifier{NewEmailNotifier(sink), nil}, position: "position 1"},
		{name: "nil sms pointer", channels: []Notifier{(*SMSNotifier)(nil)}, position: "position 0"},
		{name: "nil push pointer after valid", channels: []Notifier{NewEmailNotifier(sink), NewSMSNotifier(sink), (*PushNotifier)(nil)}, position: "position 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDispatcher(tt.channels, nopLogger())
			assert.Nil(t, d)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.position)
		})
	}
	assert.Empty(t, sink.deliveries)
}

func TestDispatcherEmptySequenceIsNoop(t *testing.T) {
	d, err := NewDispatcher([]Notifier{}, nopLogger())
	require.NoError(t, err)

	assert.NoError(t, d.Send(context.Background(), model.NewNotification("user@example.com", "hi")))
	assert.Empty(t, d.channels)
}

func TestDispatcherDefaultScenario(t *testing.T) {
	sink := &recordingSink{}
	d, err := NewDispatcher(defaultChannels(sink), nopLogger())
	require.NoError(t, err)

	n := model.NewNotification("user@example.com", "Your appointment is confirmed!")
	require.NoError(t, d.Send(context.Background(), n))

	assert.Equal(t, []model.Medium{model.MediumEmail, model.MediumSMS, model.MediumPush, model.MediumWhatsApp}, sink.media())
	for _, del := range sink.deliveries {
		assert.Equal(t, "user@example.com", del.Recipient)
		assert.Equal(t, "Your appointment is confirmed!", del.Content)
		assert.Equal(t, n.ID, del.NotificationID)
	}
}

func TestDispatcherInvokesEachChannelOnceInOrder(t *testing.T) {
	for size := 1; size <= 6; size++ {
		sink := &recordingSink{}
		channels := make([]Notifier, 0, size)
		want := make([]model.Medium, 0, size)
		for i := 0; i < size; i++ {
			if i%2 == 0 {
				channels = append(channels, NewPushNotifier(sink))
				want = append(want, model.MediumPush)
			} else {
				channels = append(channels, NewSMSNotifier(sink))
				want = append(want, model.MediumSMS)
			}
		}

		d, err := NewDispatcher(channels, nopLogger())
		require.NoError(t, err)
		require.NoError(t, d.Send(context.Background(), model.NewNotification("r", "c")))

		assert.Equal(t, want, sink.media())
	}
}

func TestDispatcherStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("push gateway down")
	sink := &recordingSink{}
	failing := &failingNotifier{err: boom}
	after := &failingNotifier{}

	d, err := NewDispatcher([]Notifier{NewEmailNotifier(sink), failing, NewSMSNotifier(sink), after}, nopLogger())
	require.NoError(t, err)

	err = d.Send(context.Background(), model.NewNotification("user@example.com", "hi"))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []model.Medium{model.MediumEmail}, sink.media())
	assert.Equal(t, 1, failing.calls)
	assert.Zero(t, after.calls)
}

func TestDispatcherErrorNamesChannel(t *testing.T) {
	boom := errors.New("unreachable")
	d, err := NewDispatcher([]Notifier{NewWhatsAppNotifier(&recordingSink{err: boom})}, nopLogger())
	require.NoError(t, err)

	err = d.Send(context.Background(), model.NewNotification("r", "c"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whatsapp")
}

func TestDispatcherOwnsItsSequence(t *testing.T) {
	sink := &recordingSink{}
	channels := defaultChannels(sink)
	d, err := NewDispatcher(channels, nopLogger())
	require.NoError(t, err)

	channels[0] = &failingNotifier{err: errors.New("replaced")}

	require.NoError(t, d.Send(context.Background(), model.NewNotification("r", "c")))
	assert.Len(t, sink.deliveries, 4)
}

func TestDispatcherIsNotifier(t *testing.T) {
	sink := &recordingSink{}
	inner, err := NewDispatcher([]Notifier{NewSMSNotifier(sink)}, nopLogger())
	require.NoError(t, err)
	outer, err := NewDispatcher([]Notifier{inner, NewPushNotifier(sink)}, nopLogger())
	require.NoError(t, err)

	require.NoError(t, outer.Send(context.Background(), model.NewNotification("r", "c")))
	assert.Equal(t, []model.Medium{model.MediumSMS, model.MediumPush}, sink.media())
}

func TestNewChannelsDefaultOrderRecordsJournal(t *testing.T) {
	cfg := &config.Config{Notifiers: config.NotifiersConfig{
		Mode:     "log_only",
		Channels: []string{"email", "sms", "push", "whatsapp"},
	}}
	journal := memory.NewJournal()

	channels, err := NewChannels(cfg, journal, nopLogger())
	require.NoError(t, err)
	require.Len(t, channels, 4)

	d, err := NewDispatcher(channels, nopLogger())
	require.NoError(t, err)
	n := model.NewNotification("user@example.com", strings.Repeat("z", 200))
	require.NoError(t, d.Send(context.Background(), n))

	recorded, err := journal.ListByNotification(context.Background(), n.ID)
	require.NoError(t, err)
	require.Len(t, recorded, 4)
	assert.Equal(t, model.MediumEmail, recorded[0].Medium)
	assert.Equal(t, model.MediumSMS, recorded[1].Medium)
	assert.Len(t, recorded[1].Content, SMSMaxLength)
	assert.Len(t, recorded[2].Content, 200)
	assert.Equal(t, model.MediumWhatsApp, recorded[3].Medium)
}

func TestNewChannelsHonoursOrderAndCase(t *testing.T) {
	cfg := &config.Config{Notifiers: config.NotifiersConfig{Channels: []string{" WhatsApp", "sms", "telegram"}}}

	channels, err := NewChannels(cfg, nil, nopLogger())
	require.NoError(t, err)
	require.Len(t, channels, 3)
	assert.IsType(t, &WhatsAppNotifier{}, channels[0])
	assert.IsType(t, &SMSNotifier{}, channels[1])
	assert.IsType(t, &TelegramNotifier{}, channels[2])
}

func TestNewChannelsEmptyList(t *testing.T) {
	channels, err := NewChannels(&config.Config{}, nil, nopLogger())
	require.NoError(t, err)
	assert.NotNil(t, channels)
	assert.Empty(t, channels)
}

func TestNewChannelsUnknownChannel(t *testing.T) {
	cfg := &config.Config{Notifiers: config.NotifiersConfig{Channels: []string{"email", "pigeon"}}}

	_, err := NewChannels(cfg, nil, nopLogger())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewChannelsProductionTelegramNeedsToken(t *testing.T) {
	cfg := &config.Config{Notifiers: config.NotifiersConfig{Mode: ModeProduction, Channels: []string{"telegram"}}}

	_, err := NewChannels(cfg, nil, nopLogger())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewChannelsProductionEmailUsesSMTP(t *testing.T) {
	cfg := &config.Config{Notifiers: config.NotifiersConfig{
		Mode:     ModeProduction,
		Channels: []string{"email"},
		Email:    config.EmailConfig{Host: "smtp.example.com", Port: 587},
	}}

	channels, err := NewChannels(cfg, nil, nopLogger())
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.IsType(t, &MailSink{}, channels[0].(*EmailNotifier).sink)
}

func TestJournalSinkSkipsRecordOnDeliveryFailure(t *testing.T) {
	boom := errors.New("down")
	journal := memory.NewJournal()
	sink := NewJournalSink(&recordingSink{err: boom}, journal, nopLogger())
	n := model.NewNotification("r", "c")

	err := NewEmailNotifier(sink).Send(context.Background(), n)
	assert.ErrorIs(t, err, boom)

	recorded, err := journal.ListByNotification(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Empty(t, recorded)
}
