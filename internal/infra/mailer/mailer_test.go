//go:build unit

package mailer_test

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"turnos-service/internal/infra"
	"turnos-service/internal/infra/mailer"
	"turnos-service/internal/pkg/config"
	"turnos-service/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewSelectsTransport(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.MailConfig
		want any
	}{
		{name: "mailersend wins", cfg: config.MailConfig{MailerSendAPIKey: "key", SMTPHost: "smtp.local"}, want: &mailer.MailerSendMailer{}},
		{name: "custom smtp", cfg: config.MailConfig{SMTPHost: "smtp.local", SMTPPort: 2525}, want: &mailer.SMTPMailer{}},
		{name: "gmail", cfg: config.MailConfig{GmailUser: "me@gmail.com", GmailAppPassword: "app"}, want: &mailer.SMTPMailer{}},
		{name: "gmail without password", cfg: config.MailConfig{GmailUser: "me@gmail.com"}, want: &mailer.DevMailer{}},
		{name: "nothing configured", cfg: config.MailConfig{}, want: &mailer.DevMailer{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.IsType(t, tc.want, mailer.New(tc.cfg, discard))
		})
	}
}

func TestDevMailer(t *testing.T) {
	err := mailer.NewDevMailer(discard).Send(context.Background(), commands.Message{To: "a@b.co", Subject: "s", HTML: "<p>x</p>"})
	assert.NoError(t, err)
}

// fakeSMTP accepts one session without STARTTLS or AUTH and records the DATA payload.
type fakeSMTP struct {
	ln   net.Listener
	mu   sync.Mutex
	from string
	rcpt string
	data string
	done chan struct{}
}

func newFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakeSMTP{ln: ln, done: make(chan struct{})}
	t.Cleanup(func() { ln.Close() })
	go f.serve()
	return f
}

func (f *fakeSMTP) addr() (string, int) {
	a := f.ln.Addr().(*net.TCPAddr)
	return a.IP.String(), a.Port
}

func (f *fakeSMTP) serve() {
	defer close(f.done)
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	r := bufio.NewReader(conn)
	write := func(s string) { _, _ = io.WriteString(conn, s+"\r\n") }
	write("220 localhost ESMTP")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")
		upper := strings.ToUpper(cmd)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			write("250-localhost")
			write("250 8BITMIME")
		case strings.HasPrefix(upper, "MAIL FROM:"):
			f.mu.Lock()
			f.from = cmd[len("MAIL FROM:"):]
			f.mu.Unlock()
			write("250 OK")
		case strings.HasPrefix(upper, "RCPT TO:"):
			f.mu.Lock()
			f.rcpt = cmd[len("RCPT TO:"):]
			f.mu.Unlock()
			write("250 OK")
		case upper == "DATA":
			write("354 go ahead")
			var b strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				b.WriteString(l)
			}
			f.mu.Lock()
			f.data = b.String()
			f.mu.Unlock()
			write("250 queued")
		case upper == "QUIT":
			write("221 bye")
			return
		default:
			write("250 OK")
		}
	}
}

func TestSMTPMailer(t *testing.T) {
	srv := newFakeSMTP(t)
	host, port := srv.addr()

	m := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     host,
		Port:     port,
		From:     "noreply@turnos.com",
		FromName: "Turnos",
		Timeout:  5 * time.Second,
	}, discard)

	err := m.Send(context.Background(), commands.Message{
		To:      "admin@example.com",
		Subject: "Nueva Solicitud de Turno - José Núñez",
		HTML:    "<p>Hola <b>Administrador</b></p>",
	})
	require.NoError(t, err)
	<-srv.done

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Contains(t, srv.from, "noreply@turnos.com")
	assert.Contains(t, srv.rcpt, "admin@example.com")
	assert.Contains(t, srv.data, "multipart/alternative")
	assert.Contains(t, srv.data, "=?utf-8?q?")
	assert.Contains(t, srv.data, "text/plain; charset=utf-8")
	assert.Contains(t, srv.data, "Hola Administrador")
	assert.Contains(t, srv.data, "<p>Hola <b>Administrador</b></p>")
}

func TestSMTPMailerFailures(t *testing.T) {
	t.Run("empty recipient", func(t *testing.T) {
		m := mailer.NewSMTPMailer(mailer.SMTPConfig{Host: "127.0.0.1", Port: 1}, discard)
		err := m.Send(context.Background(), commands.Message{Subject: "x"})
		assert.True(t, infra.IsKind(err, infra.KindDispatchFailure))
	})

	t.Run("connection refused", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		m := mailer.NewSMTPMailer(mailer.SMTPConfig{Host: "127.0.0.1", Port: port, Timeout: time.Second}, discard)
		err = m.Send(context.Background(), commands.Message{To: "a@b.co", Subject: "x"})
		assert.True(t, infra.IsKind(err, infra.KindDispatchFailure))
	})
}

// rewriteTransport sends every request to target regardless of the requested host.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newMailerSend(t *testing.T, handler http.HandlerFunc) *mailer.MailerSendMailer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	m := mailer.NewMailerSendMailer("test-key", "Turnos", "noreply@turnos.com", 5*time.Second, discard)
	m.Client().SetClient(&http.Client{Transport: rewriteTransport{target: target}})
	return m
}

func TestMailerSendMailer(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		m := newMailerSend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.True(t, strings.HasSuffix(r.URL.Path, "/email"), r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"subject":"Turno Confirmado"`)
			assert.Contains(t, string(body), `"email":"ana@example.com"`)
			assert.Contains(t, string(body), `"text":"Hola Ana"`)

			w.Header().Set("X-Message-Id", "msg-1")
			w.WriteHeader(http.StatusAccepted)
		})

		err := m.Send(context.Background(), commands.Message{To: "ana@example.com", Subject: "Turno Confirmado", HTML: "<p>Hola Ana</p>"})
		assert.NoError(t, err)
	})

	t.Run("rejected", func(t *testing.T) {
		m := newMailerSend(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"message":"The from.email must be verified."}`)
		})

		err := m.Send(context.Background(), commands.Message{To: "ana@example.com", Subject: "x", HTML: "<p>x</p>"})
		assert.True(t, infra.IsKind(err, infra.KindDispatchFailure), "got %v", err)
	})
}
