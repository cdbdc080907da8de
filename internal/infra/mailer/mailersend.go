package mailer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"turnos-service/internal/infra"
	"turnos-service/internal/usecase/commands"

	"github.com/mailersend/mailersend-go"
)

type MailerSendMailer struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	timeout time.Duration
	logger  *slog.Logger
}

func NewMailerSendMailer(apiKey, fromName, fromEmail string, timeout time.Duration, logger *slog.Logger) *MailerSendMailer {
	return &MailerSendMailer{
		client:  mailersend.NewMailersend(apiKey),
		from:    mailersend.From{Name: fromName, Email: fromEmail},
		timeout: timeout,
		logger:  logger,
	}
}

// Client exposes the API client, mainly to swap its HTTP transport.
func (m *MailerSendMailer) Client() *mailersend.Mailersend {
	return m.client
}

func (m *MailerSendMailer) Send(ctx context.Context, msg commands.Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return infra.WrapErr(m.logger, infra.KindDispatchFailure, "empty recipient", nil)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	message := m.client.Email.NewMessage()
	message.SetFrom(m.from)
	message.SetRecipients([]mailersend.Recipient{{Email: msg.To}})
	message.SetSubject(msg.Subject)
	message.SetHTML(msg.HTML)
	if text := PlainText(msg.HTML); text != "" {
		message.SetText(text)
	}

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		return infra.WrapErr(m.logger, infra.KindDispatchFailure, "mailersend request", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return infra.WrapErr(m.logger, infra.KindDispatchFailure, "mailersend rejected message",
			fmt.Errorf("status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body))))
	}

	m.logger.Info("email sent", "to", msg.To, "subject", msg.Subject, "message_id", res.Header.Get("X-Message-Id"))
	return nil
}
