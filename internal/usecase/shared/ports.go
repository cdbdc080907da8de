package shared

//go:generate mockgen -source=ports.go -destination=../../mock/shared/ports_mock.go -package=sharedmock

import (
	"context"

	"turnos-service/internal/domain/booking"
)

// AvailabilityGateway is the external calendar.
type AvailabilityGateway interface {
	// IsAvailable reports whether no busy interval overlaps r.
	IsAvailable(ctx context.Context, r booking.TimeRange) (bool, error)
	// CreateEvent returns the calendar's opaque event id.
	CreateEvent(ctx context.Context, event booking.Event) (string, error)
}

// SettingsStore holds the single booking policy. Set merges atomically and
// returns the stored result.
type SettingsStore interface {
	Get(ctx context.Context) (booking.Policy, error)
	Set(ctx context.Context, patch booking.PolicyPatch) (booking.Policy, error)
}
