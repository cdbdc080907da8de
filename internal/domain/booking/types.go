package booking

import "time"

// SlotDuration is the length of every appointment.
const SlotDuration = 30 * time.Minute

// SlotGranularity is the spacing of bookable start times.
const SlotGranularity = 30

// Event is what gets written to the external calendar once a booking is confirmed.
type Event struct {
	Title     string
	Range     TimeRange
	Attendees []string
}
