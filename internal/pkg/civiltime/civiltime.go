package civiltime

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid civil date")
	ErrInvalidTime = errors.New("invalid civil time")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Date is a calendar date with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts exactly YYYY-MM-DD and rejects impossible dates such as 2024-02-30.
func ParseDate(s string) (Date, error) {
	if len(s) != len(dateLayout) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts exactly HH:MM on a 24h clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(timeLayout) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Zone is a constant UTC offset. It carries no daylight-saving rules.
type Zone struct {
	name   string
	offset int
	loc    *time.Location
}

// FixedZone builds a Zone east of UTC by offsetSeconds (negative for the western hemisphere).
func FixedZone(name string, offsetSeconds int) Zone {
	return Zone{
		name:   name,
		offset: offsetSeconds,
		loc:    time.FixedZone(name, offsetSeconds),
	}
}

// Argentina is UTC-03:00 all year round.
var Argentina = FixedZone("America/Argentina/Buenos_Aires", -3*60*60)

func (z Zone) Name() string {
	return z.name
}

func (z Zone) Offset() time.Duration {
	return time.Duration(z.offset) * time.Second
}

func (z Zone) Location() *time.Location {
	return z.loc
}

// Normalize returns the UTC instant whose wall clock in z reads d t.
func Normalize(d Date, t TimeOfDay, z Zone) time.Time {
	// time.Date normalizes out-of-range fields, so subtracting the offset rolls day, month and year.
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, time.UTC).Add(-z.Offset())
}

// Project is the inverse of Normalize.
func Project(instant time.Time, z Zone) (Date, TimeOfDay) {
	wall := instant.UTC().Add(z.Offset())
	return Date{Year: wall.Year(), Month: wall.Month(), Day: wall.Day()},
		TimeOfDay{Hour: wall.Hour(), Minute: wall.Minute()}
}

// DayOfWeek returns 0 (Sunday) through 6 (Saturday) for d as observed in z.
func DayOfWeek(d Date, z Zone) int {
	noon := Normalize(d, TimeOfDay{Hour: 12}, z)
	day, _ := Project(noon, z)
	return int(time.Date(day.Year, day.Month, day.Day, 0, 0, 0, 0, time.UTC).Weekday())
}
