package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/infra/settingsstore"
	"turnos-service/internal/pkg/config"
	"turnos-service/internal/usecase/queries"
	"turnos-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var SettingsModule = fx.Module("settings",
	fx.Provide(
		NewSettingsStore,
		func(s shared.SettingsStore) queries.SettingsReader { return s },
	),
)

func NewSettingsStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.SettingsStore, error) {
	defaults := booking.DefaultPolicy(cfg.Booking.DefaultAdminEmail)
	logger.Info("Settings store selected", "store", cfg.Settings.Store)

	switch cfg.Settings.Store {
	case "", "memory":
		return settingsstore.NewMemory(defaults), nil
	case "file":
		return settingsstore.NewFile(cfg.Settings.File, defaults, logger), nil
	case "redis":
		client, err := NewRedis(lc, cfg)
		if err != nil {
			return nil, err
		}
		return settingsstore.NewRedis(client, cfg.Settings.RedisKey, defaults, logger), nil
	case "postgres":
		pool, err := NewDB(lc, cfg)
		if err != nil {
			return nil, err
		}
		return settingsstore.NewPostgres(context.Background(), pool, defaults, logger)
	default:
		return nil, fmt.Errorf("unknown SETTINGS_STORE %q", cfg.Settings.Store)
	}
}
