package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/pkg/civiltime"
	"turnos-service/internal/usecase/commands"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	subjectRequestReceived = "Nueva Solicitud de Turno - %s"
	subjectConfirmed       = "Turno Confirmado"
	adminGreeting          = "Administrador"
)

var (
	weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	months   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

type Composer struct {
	templates *template.Template
	zone      civiltime.Zone
}

func NewComposer() (*Composer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Composer{templates: t, zone: civiltime.Argentina}, nil
}

func (c *Composer) RequestReceived(req *booking.Request, to, confirmURL string) (commands.Message, error) {
	html, err := c.render("request_received.html", map[string]any{
		"FullName":   req.FullName(),
		"Email":      req.Email().Value(),
		"When":       c.formatWhen(req),
		"ConfirmURL": template.URL(confirmURL),
	})
	if err != nil {
		return commands.Message{}, err
	}
	return commands.Message{
		To:      to,
		Subject: fmt.Sprintf(subjectRequestReceived, req.FullName()),
		HTML:    html,
	}, nil
}

func (c *Composer) Confirmed(req *booking.Request, to string, forAdmin bool) (commands.Message, error) {
	greeting := req.FullName()
	if forAdmin {
		greeting = adminGreeting
	}
	html, err := c.render("confirmed.html", map[string]any{
		"Greeting": greeting,
		"FullName": req.FullName(),
		"When":     c.formatWhen(req),
	})
	if err != nil {
		return commands.Message{}, err
	}
	return commands.Message{To: to, Subject: subjectConfirmed, HTML: html}, nil
}

func (c *Composer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := c.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// formatWhen renders e.g. "martes, 4 de junio de 2024, 14:00".
func (c *Composer) formatWhen(req *booking.Request) string {
	d, t := req.Date(), req.Time()
	return fmt.Sprintf("%s, %d de %s de %d, %s",
		weekdays[civiltime.DayOfWeek(d, c.zone)], d.Day, months[d.Month-1], d.Year, t)
}
