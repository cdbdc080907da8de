//go:build unit || e2e

package builder

import (
	"turnos-service/internal/domain/booking"
	reqdto "turnos-service/internal/handler/dto/request"
)

type BookingRequestBuilder struct {
	FirstName string
	LastName  string
	Email     string
	Date      string
	Time      string
}

// NewBookingRequestBuilder defaults to a Tuesday 14:00 slot inside the default policy.
func NewBookingRequestBuilder() *BookingRequestBuilder {
	return &BookingRequestBuilder{
		FirstName: "Ana",
		LastName:  "Gomez",
		Email:     "ana@example.com",
		Date:      "2024-06-04",
		Time:      "14:00",
	}
}

func (b *BookingRequestBuilder) With(mutate func(*BookingRequestBuilder)) *BookingRequestBuilder {
	mutate(b)
	return b
}

func (b *BookingRequestBuilder) BuildDomain() (*booking.Request, error) {
	return booking.NewRequest(b.FirstName, b.LastName, b.Email, b.Date, b.Time)
}

// MustBuildDomain panics on invalid builder state; only use with known-good values.
func (b *BookingRequestBuilder) MustBuildDomain() *booking.Request {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}

func (b *BookingRequestBuilder) BuildDTO() reqdto.SubmitBookingRequest {
	return reqdto.SubmitBookingRequest{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Email:     b.Email,
		Date:      b.Date,
		Time:      b.Time,
	}
}

func (b *BookingRequestBuilder) BuildDirectDTO() reqdto.DirectBookingRequest {
	return reqdto.DirectBookingRequest{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Date:      b.Date,
		Time:      b.Time,
	}
}

func (b *BookingRequestBuilder) BuildPayload() booking.Payload {
	return booking.Payload{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Email:     b.Email,
		Date:      b.Date,
		Time:      b.Time,
	}
}

type PolicyBuilder struct {
	policy booking.Policy
}

func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{policy: booking.DefaultPolicy("admin@example.com")}
}

func (b *PolicyBuilder) Disabled() *PolicyBuilder {
	b.policy.Enabled = false
	return b
}

func (b *PolicyBuilder) WithHours(start, end int) *PolicyBuilder {
	b.policy.StartHour, b.policy.EndHour = start, end
	return b
}

func (b *PolicyBuilder) WithDays(days ...int) *PolicyBuilder {
	b.policy.AllowedDays = days
	return b
}

func (b *PolicyBuilder) WithAdminEmail(email string) *PolicyBuilder {
	b.policy.AdminNotifyEmail = email
	return b
}

func (b *PolicyBuilder) Build() booking.Policy {
	return b.policy.Clone()
}
