package http

import (
	"github.com/google/uuid"
	"time"
)

// CreateNotificationRequest defines the structure for a new notification request.
// Recipient and content are opaque and may be empty.
type CreateNotificationRequest struct {
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

// NotificationResponse describes a dispatched notification and the deliveries it produced.
type NotificationResponse struct {
	ID         uuid.UUID          `json:"id"`
	Recipient  string             `json:"recipient"`
	CreatedAt  time.Time          `json:"created_at"`
	Deliveries []DeliveryResponse `json:"deliveries"`
	Error      string             `json:"error,omitempty"`
}

// DeliveryResponse defines the structure of a single delivery event.
type DeliveryResponse struct {
	ID             uuid.UUID `json:"id"`
	NotificationID uuid.UUID `json:"notification_id"`
	Channel        string    `json:"channel"`
	Recipient      string    `json:"recipient"`
	Content        string    `json:"content"`
	DeliveredAt    time.Time `json:"delivered_at"`
}

// ErrorResponse defines a standard structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
