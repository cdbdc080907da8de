package calendar

import (
	"context"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/usecase/shared"
)

// Unconfigured stands in when no calendar credentials are present so the rest of the
// service still starts. Every call fails.
type Unconfigured struct{}

func (Unconfigured) IsAvailable(context.Context, booking.TimeRange) (bool, error) {
	return false, errs.Wrap(shared.ErrCalendarNotConfigured,
		"set GOOGLE_CALENDAR_ID and GOOGLE_CLIENT_EMAIL with GOOGLE_PRIVATE_KEY or GOOGLE_CREDENTIALS_FILE")
}

func (Unconfigured) CreateEvent(context.Context, booking.Event) (string, error) {
	return "", errs.Wrap(shared.ErrCalendarNotConfigured,
		"set GOOGLE_CALENDAR_ID and GOOGLE_CLIENT_EMAIL with GOOGLE_PRIVATE_KEY or GOOGLE_CREDENTIALS_FILE")
}
