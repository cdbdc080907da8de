package queries

//go:generate mockgen -source=availability.go -destination=../../mock/queries/availability_mock.go -package=queriesmock

import (
	"context"

	"turnos-service/internal/domain/booking"
	reqdto "turnos-service/internal/handler/dto/request"
	"turnos-service/internal/pkg/civiltime"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/usecase/shared"
)

type AvailabilityView struct {
	Available bool
	Range     booking.TimeRange
}

type AvailabilityQueries interface {
	// Check reports whether the slot starting at the requested date and time is free.
	Check(ctx context.Context, req reqdto.AvailabilityRequest) (*AvailabilityView, error)
}

type AvailabilityReader interface {
	IsAvailable(ctx context.Context, r booking.TimeRange) (bool, error)
}

type availabilityQueriesImpl struct {
	reader AvailabilityReader
}

func NewAvailabilityQueries(reader AvailabilityReader) AvailabilityQueries {
	return &availabilityQueriesImpl{reader: reader}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, req reqdto.AvailabilityRequest) (*AvailabilityView, error) {
	slot, err := booking.SlotAt(req.Date, req.Time, civiltime.Argentina)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrValidation)
	}

	available, err := q.reader.IsAvailable(ctx, slot)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrUpstream)
	}

	return &AvailabilityView{Available: available, Range: slot}, nil
}
