package queries

//go:generate mockgen -source=settings.go -destination=../../mock/queries/settings_mock.go -package=queriesmock

import (
	"context"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/usecase/shared"
)

type SettingsQueries interface {
	Get(ctx context.Context) (booking.Policy, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (booking.Policy, error)
}

type settingsQueriesImpl struct {
	reader SettingsReader
}

func NewSettingsQueries(reader SettingsReader) SettingsQueries {
	return &settingsQueriesImpl{reader: reader}
}

func (q *settingsQueriesImpl) Get(ctx context.Context) (booking.Policy, error) {
	p, err := q.reader.Get(ctx)
	if err != nil {
		return booking.Policy{}, errs.Mark(err, shared.ErrSettingsUnavailable)
	}
	return p, nil
}
