package mailer

import (
	"log/slog"
	"regexp"
	"strings"

	"turnos-service/internal/pkg/config"
	"turnos-service/internal/usecase/commands"
)

const (
	defaultFrom = "noreply@turnos.com"
	gmailHost   = "smtp.gmail.com"
	gmailPort   = 587
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainText is the text/plain alternative of an HTML body: the markup with tags removed.
func PlainText(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}

// New picks the transport from configuration: MailerSend when an API key is set, then a
// custom SMTP relay, then Gmail with an app password. Without any of them messages are
// only logged.
func New(cfg config.MailConfig, logger *slog.Logger) commands.NotificationDispatcher {
	from := fromAddress(cfg)

	switch {
	case cfg.MailerSendAPIKey != "":
		logger.Info("mail transport selected", "transport", "mailersend", "from", from)
		return NewMailerSendMailer(cfg.MailerSendAPIKey, cfg.FromName, from, cfg.Timeout, logger)
	case cfg.SMTPHost != "":
		logger.Info("mail transport selected", "transport", "smtp", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
		return NewSMTPMailer(SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			User:        cfg.SMTPUser,
			Pass:        cfg.SMTPPass,
			From:        from,
			FromName:    cfg.FromName,
			ImplicitTLS: cfg.SMTPSecure,
			Timeout:     cfg.Timeout,
		}, logger)
	case cfg.GmailUser != "" && cfg.GmailAppPassword != "":
		logger.Info("mail transport selected", "transport", "gmail", "user", cfg.GmailUser)
		return NewSMTPMailer(SMTPConfig{
			Host:     gmailHost,
			Port:     gmailPort,
			User:     cfg.GmailUser,
			Pass:     cfg.GmailAppPassword,
			From:     from,
			FromName: cfg.FromName,
			Timeout:  cfg.Timeout,
		}, logger)
	default:
		logger.Warn("no mail transport configured, emails will only be logged")
		return NewDevMailer(logger)
	}
}

func fromAddress(cfg config.MailConfig) string {
	switch {
	case cfg.From != "":
		return cfg.From
	case cfg.GmailUser != "":
		return cfg.GmailUser
	default:
		return defaultFrom
	}
}
