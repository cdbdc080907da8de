package commands

//go:generate mockgen -source=ports.go -destination=../../mock/commands/ports_mock.go -package=commandsmock

import (
	"context"
	"time"

	"turnos-service/internal/domain/booking"
)

// Message is a rendered email ready to send.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type NotificationDispatcher interface {
	Send(ctx context.Context, msg Message) error
}

type MessageComposer interface {
	RequestReceived(req *booking.Request, to, confirmURL string) (Message, error)
	Confirmed(req *booking.Request, to string, forAdmin bool) (Message, error)
}

type TokenCodec interface {
	Encode(plaintext []byte) (string, error)
	Decode(token string) ([]byte, error)
}

// BookingConfirmed is announced after an event has been written to the calendar.
type BookingConfirmed struct {
	EventID     string    `json:"eventId"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Email       string    `json:"email,omitempty"`
	Direct      bool      `json:"direct"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

type EventPublisher interface {
	BookingConfirmed(ctx context.Context, event BookingConfirmed) error
}

// Outcome labels for OutcomeRecorder.
const (
	OutcomeRequested = "requested"
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

type OutcomeRecorder interface {
	Record(operation, outcome string)
}
