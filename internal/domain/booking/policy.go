package booking

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"turnos-service/internal/pkg/civiltime"
	"turnos-service/internal/pkg/patch"
)

var (
	ErrBookingsDisabled = errors.New("bookings are disabled")
	ErrDayNotAllowed    = errors.New("day not allowed")
	ErrHourOutOfRange   = errors.New("hour out of range")
	ErrInvalidPolicy    = errors.New("invalid policy")
)

// Policy is the operational configuration an administrator edits at runtime.
type Policy struct {
	Enabled          bool
	StartHour        int
	EndHour          int
	AllowedDays      []int // 0 = Sunday
	AdminNotifyEmail string
}

// DefaultPolicy opens Tuesday to Saturday, 10:00 to 20:00.
func DefaultPolicy(adminNotifyEmail string) Policy {
	return Policy{
		Enabled:          true,
		StartHour:        10,
		EndHour:          20,
		AllowedDays:      []int{2, 3, 4, 5, 6},
		AdminNotifyEmail: adminNotifyEmail,
	}
}

// Admits checks the request against the policy as observed in zone.
func (p Policy) Admits(r *Request, zone civiltime.Zone) error {
	if !p.Enabled {
		return ErrBookingsDisabled
	}
	if day := civiltime.DayOfWeek(r.Date(), zone); !slices.Contains(p.AllowedDays, day) {
		return fmt.Errorf("%w: %d", ErrDayNotAllowed, day)
	}
	if hour := r.Time().Hour; hour < p.StartHour || hour >= p.EndHour {
		return fmt.Errorf("%w: %d", ErrHourOutOfRange, hour)
	}
	return nil
}

func (p Policy) Validate() error {
	if p.StartHour < 0 || p.StartHour > 23 || p.EndHour < 0 || p.EndHour > 23 {
		return fmt.Errorf("%w: hours must be within 0..23", ErrInvalidPolicy)
	}
	if p.StartHour >= p.EndHour {
		return fmt.Errorf("%w: start hour must be before end hour", ErrInvalidPolicy)
	}
	for _, d := range p.AllowedDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day %d outside 0..6", ErrInvalidPolicy, d)
		}
	}
	if p.AdminNotifyEmail != "" && !IsEmail(p.AdminNotifyEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, ErrInvalidEmail)
	}
	return nil
}

// Clone returns a copy that shares no memory with p.
func (p Policy) Clone() Policy {
	p.AllowedDays = slices.Clone(p.AllowedDays)
	return p
}

// PolicyPatch is a partial update. Nil fields keep their current value.
type PolicyPatch struct {
	Enabled          *bool
	StartHour        *int
	EndHour          *int
	AllowedDays      *[]int
	AdminNotifyEmail *string
}

func (pp PolicyPatch) IsEmpty() bool {
	return pp == PolicyPatch{}
}

// Apply merges pp into p and returns the result; p is left untouched.
func (p Policy) Apply(pp PolicyPatch) Policy {
	out := Policy{
		Enabled:          patch.Coalesce(pp.Enabled, p.Enabled),
		StartHour:        patch.Coalesce(pp.StartHour, p.StartHour),
		EndHour:          patch.Coalesce(pp.EndHour, p.EndHour),
		AllowedDays:      normalizeDays(patch.Coalesce(pp.AllowedDays, p.AllowedDays)),
		AdminNotifyEmail: strings.TrimSpace(patch.Coalesce(pp.AdminNotifyEmail, p.AdminNotifyEmail)),
	}
	return out
}

func normalizeDays(days []int) []int {
	out := slices.Clone(days)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out
}

// Merge applies pp and validates the result. Stores call it inside their critical section.
func (p Policy) Merge(pp PolicyPatch) (Policy, error) {
	out := p.Apply(pp)
	if err := out.Validate(); err != nil {
		return p, err
	}
	return out, nil
}
