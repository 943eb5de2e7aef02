package notifiers

import (
	"context"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
)

// Notifier defines the interface for any notification channel.
// This allows us to easily swap or add new notification channels without touching the Dispatcher.
type Notifier interface {
	// Send delivers the notification. The notification is passed by value,
	// so a channel can never alter the caller's copy of the content.
	Send(ctx context.Context, n model.Notification) error
}

// named is implemented by channels that report their medium.
// It is only used to label errors and log lines.
type named interface {
	Medium() model.Medium
}
