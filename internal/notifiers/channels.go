package notifiers

import (
	"fmt"
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
	"strings"
)

// ModeProduction enables real transports where they are configured.
const ModeProduction = "production"

// NewChannels builds the ordered channel sequence listed in the configuration.
// Every delivery is recorded in the journal when one is given.
// In "production" mode the email channel goes through SMTP if a host is configured,
// and the telegram channel talks to the Bot API.
func NewChannels(cfg *config.Config, journal repo.DeliveryJournal, logger *zerolog.Logger) ([]Notifier, error) {
	log := logger.With().Str("component", "channels").Logger()
	log.Info().Str("mode", cfg.Notifiers.Mode).Strs("channels", cfg.Notifiers.Channels).Msg("initializing channels")

	production := cfg.Notifiers.Mode == ModeProduction
	record := func(s Sink) Sink {
		if journal == nil {
			return s
		}
		return NewJournalSink(s, journal, logger)
	}
	logSink := record(NewLogSink(logger))

	channels := make([]Notifier, 0, len(cfg.Notifiers.Channels))
	for _, name := range cfg.Notifiers.Channels {
		switch medium := model.Medium(strings.ToLower(strings.TrimSpace(name))); medium {
		case model.MediumEmail:
			sink := logSink
			if production && cfg.Notifiers.Email.Host != "" {
				sink = record(NewMailSink(cfg.Notifiers.Email, logger))
				log.Info().Msg("smtp email transport enabled")
			}
			channels = append(channels, NewEmailNotifier(sink))
		case model.MediumSMS:
			channels = append(channels, NewSMSNotifier(logSink))
		case model.MediumPush:
			channels = append(channels, NewPushNotifier(logSink))
		case model.MediumWhatsApp:
			channels = append(channels, NewWhatsAppNotifier(logSink))
		case model.MediumTelegram:
			var bot telegramSender
			if production {
				if cfg.Notifiers.Telegram.BotToken == "" {
					return nil, fmt.Errorf("%w: telegram channel requires a bot token", ErrInvalidConfiguration)
				}
				api, err := NewTelegramBot(cfg.Notifiers.Telegram)
				if err != nil {
					return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
				}
				bot = api
				log.Info().Msg("telegram bot transport enabled")
			}
			channels = append(channels, NewTelegramNotifier(bot, cfg.Notifiers.Telegram.ChatID, logSink, logger))
		default:
			log.Error().Str("channel", name).Msg("unknown channel")
			return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidConfiguration, name)
		}
	}

	return channels, nil
}
