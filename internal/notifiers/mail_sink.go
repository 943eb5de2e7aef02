package notifiers

import (
	"context"
	"fmt"
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailSink sends email deliveries via SMTP.
type MailSink struct {
	dialer  mailSender
	from    string
	subject string
	logger  zerolog.Logger
}

// NewMailSink creates a new instance of MailSink.
func NewMailSink(cfg config.EmailConfig, logger *zerolog.Logger) *MailSink {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return newMailSink(d, cfg, logger)
}

func newMailSink(dialer mailSender, cfg config.EmailConfig, logger *zerolog.Logger) *MailSink {
	return &MailSink{
		dialer:  dialer,
		from:    cfg.From,
		subject: cfg.Subject,
		logger:  logger.With().Str("component", "mail_sink").Logger(),
	}
}

// Deliver implements the Sink interface for email.
func (s *MailSink) Deliver(_ context.Context, d *model.Delivery) error {
	if d.Medium != model.MediumEmail {
		return fmt.Errorf("invalid delivery for email sink: %s", d.Medium)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", d.Recipient)
	m.SetHeader("Subject", s.subject)
	m.SetBody("text/plain", d.Content)

	// DialAndSend opens a connection, sends the email, and closes it.
	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error().Err(err).Stringer("notification_id", d.NotificationID).Msg("failed to send email")
		return err
	}

	s.logger.Info().Stringer("notification_id", d.NotificationID).Str("recipient", d.Recipient).Msg("email sent successfully")
	return nil
}
