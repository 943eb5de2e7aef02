package notifiers

import (
	"context"
	"fmt"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	"github.com/rs/zerolog"
)

// telegramSender is satisfied by *tgbotapi.BotAPI.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends notifications via a Telegram bot to a single configured chat.
// The recipient has no Telegram identity of its own, so it is prefixed to the message.
// Without a bot the notifier only emits the delivery to its sink.
type TelegramNotifier struct {
	bot    telegramSender
	chatID int64
	sink   Sink
	logger zerolog.Logger
}

// NewTelegramBot creates the Bot API client from the configured token.
func NewTelegramBot(cfg config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}
	return bot, nil
}

// NewTelegramNotifier creates a new instance of TelegramNotifier. bot may be nil.
func NewTelegramNotifier(bot telegramSender, chatID int64, sink Sink, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		sink:   sink,
		logger: logger.With().Str("component", "telegram_notifier").Logger(),
	}
}

// Medium returns model.MediumTelegram.
func (n *TelegramNotifier) Medium() model.Medium { return model.MediumTelegram }

// Send implements the Notifier interface for Telegram.
func (n *TelegramNotifier) Send(ctx context.Context, notification model.Notification) error {
	delivery := model.NewDelivery(notification, model.MediumTelegram, notification.Content)

	if n.bot != nil {
		msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("%s\n\n%s", notification.Recipient, notification.Content))
		if _, err := n.bot.Send(msg); err != nil {
			n.logger.Error().Err(err).Stringer("notification_id", notification.ID).Msg("failed to send telegram message")
			return err
		}
		n.logger.Info().Stringer("notification_id", notification.ID).Int64("chat_id", n.chatID).Msg("telegram message sent successfully")
	}

	return n.sink.Deliver(ctx, delivery)
}
