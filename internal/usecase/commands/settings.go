package commands

//go:generate mockgen -source=settings.go -destination=../../mock/commands/settings_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"turnos-service/internal/domain/booking"
	reqdto "turnos-service/internal/handler/dto/request"
	"turnos-service/internal/infra"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/usecase/shared"
)

var ErrInvalidSettings = errs.New("invalid settings")

type SettingsCommands interface {
	// Update merges the present fields into the stored policy and returns the result.
	Update(ctx context.Context, req reqdto.UpdateSettingsRequest) (booking.Policy, error)
}

type settingsCommandsImpl struct {
	store shared.SettingsStore
}

func NewSettingsCommands(store shared.SettingsStore) SettingsCommands {
	return &settingsCommandsImpl{store: store}
}

func (s *settingsCommandsImpl) Update(ctx context.Context, req reqdto.UpdateSettingsRequest) (booking.Policy, error) {
	p, err := req.ToDomain()
	if err != nil {
		return booking.Policy{}, errs.Mark(err, ErrInvalidSettings)
	}

	updated, err := s.store.Set(ctx, p)
	if err != nil {
		if errs.Is(err, booking.ErrInvalidPolicy) {
			return booking.Policy{}, errs.Mark(err, ErrInvalidSettings)
		}
		if infra.IsKind(err, infra.KindConflict) {
			return booking.Policy{}, errs.Mark(err, shared.ErrConflict)
		}
		return booking.Policy{}, errs.Mark(err, shared.ErrSettingsUnavailable)
	}

	slog.InfoContext(ctx, "booking settings updated",
		"enabled", updated.Enabled,
		"start_hour", updated.StartHour,
		"end_hour", updated.EndHour,
		"allowed_days", updated.AllowedDays,
	)
	return updated, nil
}
