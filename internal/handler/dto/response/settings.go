package response

import "turnos-service/internal/domain/booking"

type SettingsResponse struct {
	Enabled     bool   `json:"enabled"`
	StartHour   int    `json:"startHour"`
	EndHour     int    `json:"endHour"`
	AllowedDays []int  `json:"allowedDays"`
	AdminEmail  string `json:"calendarEmail"`
}

func NewSettingsResponse(p booking.Policy) SettingsResponse {
	days := p.AllowedDays
	if days == nil {
		days = []int{}
	}
	return SettingsResponse{
		Enabled:     p.Enabled,
		StartHour:   p.StartHour,
		EndHour:     p.EndHour,
		AllowedDays: days,
		AdminEmail:  p.AdminNotifyEmail,
	}
}
