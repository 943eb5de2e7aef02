package model

import (
	"github.com/google/uuid"
	"time"
)

// Medium represents the delivery medium of a channel (e.g., email, sms).
type Medium string

const (
	MediumEmail    Medium = "email"
	MediumSMS      Medium = "sms"
	MediumPush     Medium = "push"
	MediumWhatsApp Medium = "whatsapp"
	MediumTelegram Medium = "telegram"
)

// Notification is a single request to notify a recipient on every configured channel.
// It is technology-agnostic and does not contain any DB or JSON tags.
type Notification struct {
	ID        uuid.UUID
	Recipient string // Opaque address: email, phone number, device token, etc.
	Content   string // Opaque text payload.
	CreatedAt time.Time
}

// NewNotification is a factory function to create a new notification request.
func NewNotification(recipient, content string) Notification {
	return Notification{
		ID:        uuid.New(),
		Recipient: recipient,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Delivery is the event a channel emits for a single notification.
// Content holds the text as actually delivered, after any channel-specific transformation.
type Delivery struct {
	ID             uuid.UUID
	NotificationID uuid.UUID
	Medium         Medium
	Recipient      string
	Content        string
	DeliveredAt    time.Time
}

// NewDelivery creates the delivery event of a notification on the given medium.
func NewDelivery(n Notification, medium Medium, content string) *Delivery {
	return &Delivery{
		ID:             uuid.New(),
		NotificationID: n.ID,
		Medium:         medium,
		Recipient:      n.Recipient,
		Content:        content,
		DeliveredAt:    time.Now().UTC(),
	}
}
