// Package mailer delivers envelopes over authenticated SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"artesano-backend/config"
	"artesano-backend/internal/domain"
)

// SMTPTransport is a long-lived, immutably-configured transport constructed
// once at startup and injected into the notification usecase. One Send call
// is exactly one delivery attempt.
type SMTPTransport struct {
	host     string
	port     string
	username string
	password string
}

func New(cfg *config.Config) *SMTPTransport {
	return &SMTPTransport{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

// Send delivers the envelope and returns the generated Message-ID. The
// context deadline bounds the attempt; smtp.SendMail negotiates STARTTLS
// when the server offers it.
func (t *SMTPTransport) Send(ctx context.Context, env domain.Envelope) (string, error) {
	if t.host == "" {
		return "", fmt.Errorf("smtp host not configured")
	}

	fromAddr, err := extractAddress(env.From)
	if err != nil {
		return "", fmt.Errorf("invalid sender %q: %w", env.From, err)
	}
	toAddr, err := extractAddress(env.To)
	if err != nil {
		return "", fmt.Errorf("invalid recipient %q: %w", env.To, err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), t.host)
	data := buildMessage(env, messageID)

	var auth smtp.Auth
	if t.username != "" || t.password != "" {
		auth = smtp.PlainAuth("", t.username, t.password, t.host)
	}
	addr := net.JoinHostPort(t.host, t.port)

	// smtp.SendMail has no context parameter; run it in a goroutine so the
	// caller's deadline is still honored.
	errCh := make(chan error, 1)
	go func() {
		errCh <- smtp.SendMail(addr, auth, fromAddr, []string{toAddr}, data)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return "", err
		}
		return messageID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// buildMessage assembles RFC 5322 headers and the HTML body.
func buildMessage(env domain.Envelope, messageID string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", env.From),
		fmt.Sprintf("To: %s", env.To),
		fmt.Sprintf("Subject: %s", env.Subject),
		fmt.Sprintf("Message-ID: %s", messageID),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + env.HTMLBody)
}

// extractAddress pulls the bare addr-spec out of a display identity like
// `Artesano <no-reply@artesano.shop>`.
func extractAddress(identity string) (string, error) {
	parsed, err := mail.ParseAddress(identity)
	if err != nil {
		return "", err
	}
	return parsed.Address, nil
}
