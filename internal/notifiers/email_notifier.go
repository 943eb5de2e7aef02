package notifiers

import (
	"context"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
)

// EmailNotifier delivers the content verbatim; email carries rich and long content.
type EmailNotifier struct {
	sink Sink
}

// NewEmailNotifier creates a new instance of EmailNotifier.
func NewEmailNotifier(sink Sink) *EmailNotifier {
	return &EmailNotifier{sink: sink}
}

// Medium returns model.MediumEmail.
func (n *EmailNotifier) Medium() model.Medium { return model.MediumEmail }

// Send implements the Notifier interface for email.
func (n *EmailNotifier) Send(ctx context.Context, notification model.Notification) error {
	return n.sink.Deliver(ctx, model.NewDelivery(notification, model.MediumEmail, notification.Content))
}
