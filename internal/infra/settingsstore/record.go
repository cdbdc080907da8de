package settingsstore

import (
	"encoding/json"

	"turnos-service/internal/domain/booking"
)

// record is the persisted shape of a booking.Policy, shared by every durable backend.
// Keys match the JSON of the settings API.
type record struct {
	Enabled       bool   `json:"enabled" toml:"enabled"`
	StartHour     int    `json:"startHour" toml:"start_hour"`
	EndHour       int    `json:"endHour" toml:"end_hour"`
	AllowedDays   []int  `json:"allowedDays" toml:"allowed_days"`
	CalendarEmail string `json:"calendarEmail" toml:"calendar_email"`
}

func toRecord(p booking.Policy) record {
	return record{
		Enabled:       p.Enabled,
		StartHour:     p.StartHour,
		EndHour:       p.EndHour,
		AllowedDays:   p.Clone().AllowedDays,
		CalendarEmail: p.AdminNotifyEmail,
	}
}

func (r record) toDomain() booking.Policy {
	p := booking.Policy{
		Enabled:          r.Enabled,
		StartHour:        r.StartHour,
		EndHour:          r.EndHour,
		AllowedDays:      r.AllowedDays,
		AdminNotifyEmail: r.CalendarEmail,
	}
	if p.AllowedDays == nil {
		p.AllowedDays = []int{}
	}
	return p.Clone()
}

func marshalRecord(p booking.Policy) ([]byte, error) {
	return json.Marshal(toRecord(p))
}

func unmarshalRecord(b []byte) (booking.Policy, error) {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return booking.Policy{}, err
	}
	return r.toDomain(), nil
}
