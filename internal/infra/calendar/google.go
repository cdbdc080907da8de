package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/infra"
	"turnos-service/internal/pkg/civiltime"
	"turnos-service/internal/pkg/config"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const reminderMinutes = 10

// NewService authenticates as a service account, either from a credentials JSON file
// or from the client email and PEM private key. Escaped "\n" sequences in the key are
// expanded, as they usually arrive through a single-line environment variable.
func NewService(ctx context.Context, cfg config.CalendarConfig) (*gcal.Service, error) {
	var jwtCfg *jwt.Config
	if cfg.CredentialsFile != "" {
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		jwtCfg, err = google.JWTConfigFromJSON(b, gcal.CalendarScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials: %w", err)
		}
	} else {
		jwtCfg = &jwt.Config{
			Email:      cfg.ClientEmail,
			PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
			Scopes:     []string{gcal.CalendarScope},
			TokenURL:   google.JWTTokenURL,
		}
	}

	opts := []option.ClientOption{option.WithHTTPClient(jwtCfg.Client(ctx))}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}
	return svc, nil
}

// Gateway answers availability from the free/busy API and writes confirmed bookings
// as events. Attendees go into the description only; service accounts cannot send
// invitations.
type Gateway struct {
	svc        *gcal.Service
	calendarID string
	zone       civiltime.Zone
	timeout    time.Duration
	logger     *slog.Logger
}

func NewGateway(svc *gcal.Service, cfg config.CalendarConfig, logger *slog.Logger) *Gateway {
	return &Gateway{
		svc:        svc,
		calendarID: cfg.CalendarID,
		zone:       civiltime.Argentina,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

func (g *Gateway) IsAvailable(ctx context.Context, r booking.TimeRange) (bool, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: formatInstant(r.Start()),
		TimeMax: formatInstant(r.End()),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return false, g.wrap("freebusy query failed", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return true, nil
	}
	if len(cal.Errors) > 0 {
		return false, infra.WrapErr(g.logger, infra.KindUpstreamRejected, "freebusy reported calendar errors",
			fmt.Errorf("%s: %s", cal.Errors[0].Domain, cal.Errors[0].Reason))
	}
	return len(cal.Busy) == 0, nil
}

func (g *Gateway) CreateEvent(ctx context.Context, event booking.Event) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	ev := &gcal.Event{
		Summary: event.Title,
		Start: &gcal.EventDateTime{
			DateTime: formatInstant(event.Range.Start()),
			TimeZone: g.zone.Name(),
		},
		End: &gcal.EventDateTime{
			DateTime: formatInstant(event.Range.End()),
			TimeZone: g.zone.Name(),
		},
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			Overrides:       []*gcal.EventReminder{{Method: "popup", Minutes: reminderMinutes}},
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if len(event.Attendees) > 0 {
		ev.Description = contactDescription(event.Attendees)
	}

	created, err := g.svc.Events.Insert(g.calendarID, ev).SendUpdates("none").Context(ctx).Do()
	if err != nil {
		return "", g.wrap("event insert failed", err)
	}

	g.logger.Info("calendar event created", "event_id", created.Id, "summary", event.Title)
	return created.Id, nil
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// wrap separates requests the calendar refused from transport and server failures.
func (g *Gateway) wrap(msg string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != http.StatusTooManyRequests {
		return infra.WrapErr(g.logger, infra.KindUpstreamRejected, msg, err)
	}
	return infra.WrapErr(g.logger, infra.KindUpstreamUnavailable, msg, err)
}

func contactDescription(emails []string) string {
	var b strings.Builder
	b.WriteString("Emails de contacto:")
	for _, e := range emails {
		b.WriteString("\n- ")
		b.WriteString(e)
	}
	return b.String()
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
