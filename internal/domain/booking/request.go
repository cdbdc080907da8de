package booking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"turnos-service/internal/pkg/civiltime"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidTime       = errors.New("invalid time")
	ErrOffGrid           = errors.New("time is not on the slot grid")
	ErrIncompletePayload = errors.New("incomplete booking payload")
)

// Request is an unconfirmed appointment request. It is never stored; it lives in memory
// for one HTTP call and inside a confirmation token afterwards.
type Request struct {
	firstName string
	lastName  string
	email     Email
	date      civiltime.Date
	time      civiltime.TimeOfDay
}

// NewRequest validates untrusted input from the booking form.
func NewRequest(firstName, lastName, email, date, tod string) (*Request, error) {
	r, err := build(firstName, lastName, email, date, tod)
	if err != nil {
		return nil, err
	}
	if r.time.Minute%SlotGranularity != 0 {
		return nil, fmt.Errorf("%w: %s", ErrOffGrid, r.time)
	}
	return r, nil
}

// NewAdminRequest builds a request entered by the administrator, which carries no requester email.
func NewAdminRequest(firstName, lastName, date, tod string) (*Request, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	d, t, err := parseSlot(date, tod)
	if err != nil {
		return nil, err
	}
	return &Request{firstName: firstName, lastName: lastName, date: d, time: t}, nil
}

func build(firstName, lastName, email, date, tod string) (*Request, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first name", ErrMissingField)
	}
	if lastName == "" {
		return nil, fmt.Errorf("%w: last name", ErrMissingField)
	}

	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	d, t, err := parseSlot(date, tod)
	if err != nil {
		return nil, err
	}

	return &Request{firstName: firstName, lastName: lastName, email: e, date: d, time: t}, nil
}

func parseSlot(date, tod string) (civiltime.Date, civiltime.TimeOfDay, error) {
	if strings.TrimSpace(date) == "" {
		return civiltime.Date{}, civiltime.TimeOfDay{}, fmt.Errorf("%w: date", ErrMissingField)
	}
	if strings.TrimSpace(tod) == "" {
		return civiltime.Date{}, civiltime.TimeOfDay{}, fmt.Errorf("%w: time", ErrMissingField)
	}
	d, err := civiltime.ParseDate(date)
	if err != nil {
		return civiltime.Date{}, civiltime.TimeOfDay{}, errors.Join(ErrInvalidDate, err)
	}
	t, err := civiltime.ParseTimeOfDay(tod)
	if err != nil {
		return civiltime.Date{}, civiltime.TimeOfDay{}, errors.Join(ErrInvalidTime, err)
	}
	return d, t, nil
}

func (r *Request) FirstName() string {
	return r.firstName
}

func (r *Request) LastName() string {
	return r.lastName
}

func (r *Request) FullName() string {
	return r.firstName + " " + r.lastName
}

func (r *Request) Email() Email {
	return r.email
}

func (r *Request) Date() civiltime.Date {
	return r.date
}

func (r *Request) Time() civiltime.TimeOfDay {
	return r.time
}

// Title is the calendar event summary.
func (r *Request) Title() string {
	return "Turno - " + r.FullName()
}

// Slot is the absolute range occupied by the appointment.
func (r *Request) Slot(zone civiltime.Zone) TimeRange {
	start := civiltime.Normalize(r.date, r.time, zone)
	return TimeRange{start: start, end: start.Add(SlotDuration)}
}

// Payload is the sealed form of a Request. Field names and order are shared with
// links issued by earlier deployments and must not change.
type Payload struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Date      string `json:"fecha"`
	Time      string `json:"hora"`
}

func (r *Request) Payload() Payload {
	return Payload{
		FirstName: r.firstName,
		LastName:  r.lastName,
		Email:     r.email.Value(),
		Date:      r.date.String(),
		Time:      r.time.String(),
	}
}

// Marshal renders p as compact JSON without HTML escaping.
func (p Payload) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func UnmarshalPayload(b []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// FromPayload rebuilds a Request from a decoded token. Slot grid is not enforced.
func FromPayload(p Payload) (*Request, error) {
	if p.FirstName == "" || p.LastName == "" || p.Email == "" || p.Date == "" || p.Time == "" {
		return nil, ErrIncompletePayload
	}
	return build(p.FirstName, p.LastName, p.Email, p.Date, p.Time)
}

// SlotAt is the range a booking at date and tod would occupy. Unlike NewRequest it
// does not enforce the slot grid.
func SlotAt(date, tod string, zone civiltime.Zone) (TimeRange, error) {
	d, t, err := parseSlot(date, tod)
	if err != nil {
		return TimeRange{}, err
	}
	start := civiltime.Normalize(d, t, zone)
	return TimeRange{start: start, end: start.Add(SlotDuration)}, nil
}
