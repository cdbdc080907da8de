package request

import (
	"turnos-service/internal/domain/booking"

	"github.com/jinzhu/copier"
)

// UpdateSettingsRequest is a partial update; omitted fields keep their value.
type UpdateSettingsRequest struct {
	Enabled          *bool   `json:"enabled"`
	StartHour        *int    `json:"startHour"`
	EndHour          *int    `json:"endHour"`
	AllowedDays      *[]int  `json:"allowedDays"`
	AdminNotifyEmail *string `json:"calendarEmail"`
}

func (r *UpdateSettingsRequest) ToDomain() (booking.PolicyPatch, error) {
	var p booking.PolicyPatch
	if err := copier.Copy(&p, r); err != nil {
		return booking.PolicyPatch{}, err
	}
	return p, nil
}
