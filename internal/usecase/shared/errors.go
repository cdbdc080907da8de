package shared

import "turnos-service/internal/pkg/errs"

// Outcome markers shared by commands and queries. Concrete causes are attached
// with errs.Mark so handlers can branch with errs.Is and still log the cause.
var (
	ErrValidation              = errs.New("validation failed")
	ErrInvalidToken            = errs.New("invalid confirmation token")
	ErrCorruptPayload          = errs.New("corrupt confirmation payload")
	ErrConflict                = errs.New("slot no longer available")
	ErrUpstream                = errs.New("calendar unavailable")
	ErrCalendarNotConfigured   = errs.New("calendar not configured")
	ErrDispatch                = errs.New("notification dispatch failed")
	ErrAdminEmailNotConfigured = errs.New("admin email not configured")
	ErrSettingsUnavailable     = errs.New("settings unavailable")
)
