package notifiers

import (
	"context"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
)

// SMSMaxLength is the hard cap, in characters, of a single text message.
const SMSMaxLength = 160

// SMSNotifier delivers at most the first SMSMaxLength characters of the content.
type SMSNotifier struct {
	sink Sink
}

// NewSMSNotifier creates a new instance of SMSNotifier.
func NewSMSNotifier(sink Sink) *SMSNotifier {
	return &SMSNotifier{sink: sink}
}

// Medium returns model.MediumSMS.
func (n *SMSNotifier) Medium() model.Medium { return model.MediumSMS }

// Send implements the Notifier interface for SMS.
func (n *SMSNotifier) Send(ctx context.Context, notification model.Notification) error {
	text := truncate(notification.Content, SMSMaxLength)
	return n.sink.Deliver(ctx, model.NewDelivery(notification, model.MediumSMS, text))
}

// truncate returns the first limit characters (code points) of s.
func truncate(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
