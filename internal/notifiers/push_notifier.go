package notifiers

import (
	"context"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
)

// PushNotifier delivers the content verbatim to a device token. No length cap is enforced.
type PushNotifier struct {
	sink Sink
}

// NewPushNotifier creates a new instance of PushNotifier.
func NewPushNotifier(sink Sink) *PushNotifier {
	return &PushNotifier{sink: sink}
}

// Medium returns model.MediumPush.
func (n *PushNotifier) Medium() model.Medium { return model.MediumPush }

// Send implements the Notifier interface for push notifications.
func (n *PushNotifier) Send(ctx context.Context, notification model.Notification) error {
	return n.sink.Deliver(ctx, model.NewDelivery(notification, model.MediumPush, notification.Content))
}
