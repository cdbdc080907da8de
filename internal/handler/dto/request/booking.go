package request

import (
	"turnos-service/internal/domain/booking"
)

// Field names follow the public booking form.
type SubmitBookingRequest struct {
	FirstName string `json:"nombre" binding:"required"`
	LastName  string `json:"apellido" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Date      string `json:"fecha" binding:"required"`
	Time      string `json:"hora" binding:"required"`
}

func (r *SubmitBookingRequest) ToDomain() (*booking.Request, error) {
	return booking.NewRequest(r.FirstName, r.LastName, r.Email, r.Date, r.Time)
}

type ConfirmBookingRequest struct {
	Data string `json:"data" binding:"required"`
}

type AvailabilityRequest struct {
	Date string `json:"fecha" binding:"required"`
	Time string `json:"hora" binding:"required"`
}

type DirectBookingRequest struct {
	FirstName string `json:"nombre" binding:"required"`
	LastName  string `json:"apellido" binding:"required"`
	Date      string `json:"fecha" binding:"required"`
	Time      string `json:"hora" binding:"required"`
}

func (r *DirectBookingRequest) ToDomain() (*booking.Request, error) {
	return booking.NewAdminRequest(r.FirstName, r.LastName, r.Date, r.Time)
}
