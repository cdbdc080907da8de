package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrMissingField = errors.New("required field missing")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidRange = errors.New("start must be before end")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Email{}, fmt.Errorf("%w: email", ErrMissingField)
	}
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}

// IsEmail reports whether s has a user@host.tld shape.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{start: start.UTC(), end: end.UTC()}, nil
}

func (r TimeRange) Start() time.Time {
	return r.start
}

func (r TimeRange) End() time.Time {
	return r.end
}

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}
