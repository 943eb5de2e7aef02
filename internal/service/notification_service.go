package service

import (
	"context"
	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/ilindan-dev/fanout-notifier/internal/notifiers"
	"github.com/rs/zerolog"
	"unicode/utf8"
)

// NotificationService encapsulates the business logic for sending notifications.
// It orchestrates the dispatcher and the delivery journal.
type NotificationService struct {
	notifier notifiers.Notifier
	journal  repo.DeliveryJournal
	logger   zerolog.Logger
}

func NewNotificationService(
	notifier notifiers.Notifier,
	journal repo.DeliveryJournal,
	logger *zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notifier: notifier,
		journal:  journal,
		logger:   logger.With().Str("layer", "service").Logger(),
	}
}

// Notify creates a notification and hands it to every configured channel.
// The recipient and content are opaque and not validated here.
// On a channel failure the notification is still returned together with the error,
// so the caller can look up the deliveries that did happen.
func (s *NotificationService) Notify(ctx context.Context, recipient, content string) (*model.Notification, error) {
	n := model.NewNotification(recipient, content)
	log := s.logger.With().Stringer("notification_id", n.ID).Logger()
	log.Info().Str("recipient", recipient).Int("content_length", utf8.RuneCountInString(content)).Msg("dispatching notification")

	if err := s.notifier.Send(ctx, n); err != nil {
		log.Error().Err(err).Msg("failed to dispatch notification")
		return &n, err
	}

	log.Info().Msg("notification dispatched")
	return &n, nil
}

// GetDelivery retrieves a single delivery event.
func (s *NotificationService) GetDelivery(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	d, err := s.journal.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Msgf("Failed to get delivery by ID: %s", id)
		return nil, err
	}
	return d, nil
}

// ListDeliveries returns the delivery events of a notification in channel order.
func (s *NotificationService) ListDeliveries(ctx context.Context, notificationID uuid.UUID) ([]*model.Delivery, error) {
	list, err := s.journal.ListByNotification(ctx, notificationID)
	if err != nil {
		s.logger.Error().Err(err).Str("notification_id", notificationID.String()).Msg("can't list deliveries")
		return nil, err
	}
	return list, nil
}
