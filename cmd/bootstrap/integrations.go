package bootstrap

import (
	"context"
	"log/slog"

	"turnos-service/internal/domain/admin"
	"turnos-service/internal/infra/calendar"
	"turnos-service/internal/infra/events"
	"turnos-service/internal/infra/mailer"
	"turnos-service/internal/pkg/config"
	"turnos-service/internal/pkg/tokencodec"
	"turnos-service/internal/usecase/commands"
	"turnos-service/internal/usecase/queries"
	"turnos-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var IntegrationsModule = fx.Module("integrations",
	fx.Provide(
		NewAvailabilityGateway,
		func(g shared.AvailabilityGateway) queries.AvailabilityReader { return g },
		NewDispatcher,
		NewComposer,
		NewTokenCodec,
		NewEventPublisher,
		NewAdminAccount,
	),
)

// NewAvailabilityGateway returns calendar.Unconfigured when no credentials are set.
func NewAvailabilityGateway(cfg config.Config, logger *slog.Logger) (shared.AvailabilityGateway, error) {
	if !cfg.Calendar.Configured() {
		logger.Warn("Google Calendar credentials not configured; bookings cannot be confirmed")
		return calendar.Unconfigured{}, nil
	}
	svc, err := calendar.NewService(context.Background(), cfg.Calendar)
	if err != nil {
		return nil, err
	}
	return calendar.NewGateway(svc, cfg.Calendar, logger), nil
}

func NewDispatcher(cfg config.Config, logger *slog.Logger) commands.NotificationDispatcher {
	return mailer.New(cfg.Mail, logger)
}

func NewComposer() (commands.MessageComposer, error) {
	return mailer.NewComposer()
}

func NewTokenCodec(cfg config.Config, logger *slog.Logger) commands.TokenCodec {
	if cfg.Booking.UsesLegacySecret() {
		logger.Warn("ENCRYPTION_SECRET is the built-in default; confirmation links can be forged. Generate one with cmd/gensecret")
	}
	return tokencodec.NewFromSecret(cfg.Booking.EncryptionSecret)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (commands.EventPublisher, error) {
	if cfg.NATS.URL == "" {
		return events.Nop{}, nil
	}
	pub, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Publishing booking events", "subject", pub.Subject())
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

func NewAdminAccount(cfg config.Config) admin.Account {
	if cfg.Admin.PasswordHash != "" {
		return admin.NewAccount(cfg.Admin.Username, cfg.Admin.PasswordHash, true)
	}
	return admin.NewAccount(cfg.Admin.Username, cfg.Admin.Password, false)
}
