package infra

import (
	"errors"
	"log/slog"

	"turnos-service/internal/pkg/errs"
)

type ErrorKind string

// Error is returned by every adapter in this package tree so callers can branch on Kind
// without knowing which backend produced it.
type Error struct {
	Kind ErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e Error) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e Error) Unwrap() error {
	return e.err
}

func WrapErr(slogger *slog.Logger, kind ErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Error("Infrastructure error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return Error{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	KindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindUpstreamRejected    ErrorKind = "UPSTREAM_REJECTED"
	KindStoreFailure        ErrorKind = "STORE_FAILURE"
	KindConflict            ErrorKind = "CONFLICT"
	KindDispatchFailure     ErrorKind = "DISPATCH_FAILURE"
	KindPublishFailure      ErrorKind = "PUBLISH_FAILURE"
)
