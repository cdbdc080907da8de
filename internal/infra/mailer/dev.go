package mailer

import (
	"context"
	"log/slog"

	"turnos-service/internal/usecase/commands"
)

// DevMailer logs messages instead of sending them.
type DevMailer struct {
	logger *slog.Logger
}

func NewDevMailer(logger *slog.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

func (d *DevMailer) Send(ctx context.Context, msg commands.Message) error {
	d.logger.InfoContext(ctx, "[DEV MAIL] email not sent",
		"to", msg.To,
		"subject", msg.Subject,
		"text", PlainText(msg.HTML),
	)
	return nil
}
