package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"turnos-service/internal/infra"
	"turnos-service/internal/usecase/commands"

	"github.com/nats-io/nats.go"
)

const BookingConfirmedSubject = "booking.confirmed"

type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSPublisher connects to url. Events go to "<prefix>.booking.confirmed".
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("turnos-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, infra.WrapErr(logger, infra.KindPublishFailure, "connect to NATS", err)
	}
	return newNATSPublisher(conn, prefix, logger), nil
}

func newNATSPublisher(conn *nats.Conn, prefix string, logger *slog.Logger) *NATSPublisher {
	subject := BookingConfirmedSubject
	if prefix != "" {
		subject = prefix + "." + subject
	}
	return &NATSPublisher{conn: conn, subject: subject, logger: logger}
}

func (p *NATSPublisher) Subject() string {
	return p.subject
}

func (p *NATSPublisher) BookingConfirmed(ctx context.Context, event commands.BookingConfirmed) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return infra.WrapErr(p.logger, infra.KindPublishFailure, "marshal event", err)
	}

	p.logger.DebugContext(ctx, "Publishing event", "subject", p.subject, "event_id", event.EventID)

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return infra.WrapErr(p.logger, infra.KindPublishFailure, "publish event", err)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) BookingConfirmed(context.Context, commands.BookingConfirmed) error {
	return nil
}
