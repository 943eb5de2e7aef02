package notifiers

import (
	"context"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
)

// WhatsAppNotifier delivers the content verbatim.
type WhatsAppNotifier struct {
	sink Sink
}

// NewWhatsAppNotifier creates a new instance of WhatsAppNotifier.
func NewWhatsAppNotifier(sink Sink) *WhatsAppNotifier {
	return &WhatsAppNotifier{sink: sink}
}

// Medium returns model.MediumWhatsApp.
func (n *WhatsAppNotifier) Medium() model.Medium { return model.MediumWhatsApp }

// Send implements the Notifier interface for WhatsApp.
func (n *WhatsAppNotifier) Send(ctx context.Context, notification model.Notification) error {
	return n.sink.Deliver(ctx, model.NewDelivery(notification, model.MediumWhatsApp, notification.Content))
}
