package app

import (
	"context"
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	deliveryHTTP "github.com/ilindan-dev/fanout-notifier/internal/delivery/http"
	"github.com/ilindan-dev/fanout-notifier/internal/logger"
	"github.com/ilindan-dev/fanout-notifier/internal/notifiers"
	"github.com/ilindan-dev/fanout-notifier/internal/service"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"net/http"
)

// Demo notification sent by the notifier command.
const (
	DemoRecipient = "user@example.com"
	DemoContent   = "Your appointment is confirmed!"
)

// CommonModule provides dependencies that are shared between the notifier command and the API.
var CommonModule = fx.Options(
	fx.Provide(
		// Core components
		config.NewConfig,
		logger.NewLogger,

		// Storage Layer
		NewDeliveryJournal,

		// Channels and the dispatcher over them
		notifiers.NewChannels,
		notifiers.NewDispatcher,
		func(d *notifiers.Dispatcher) notifiers.Notifier { return d },

		// Service Layer
		service.NewNotificationService,
	),
)

// NotifierModule sends the demo notification once and stops the application.
// A failed dispatch stops it with exit code 1.
var NotifierModule = fx.Options(
	CommonModule,
	fx.Invoke(func(svc *service.NotificationService, shutdowner fx.Shutdowner, logger *zerolog.Logger, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					code := 0
					if _, err := svc.Notify(context.Background(), DemoRecipient, DemoContent); err != nil {
						logger.Error().Err(err).Msg("notification failed")
						code = 1
					}
					_ = shutdowner.Shutdown(fx.ExitCode(code))
				}()
				return nil
			},
		})
	}),
)

// APIModule defines the Fx module for the HTTP API application.
var APIModule = fx.Options(
	CommonModule, // Include all shared components
	fx.Provide(
		// API-specific components
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewServer,
	),

	fx.Invoke(func(server *deliveryHTTP.Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						panic(err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)
