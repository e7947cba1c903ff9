package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"artesano-backend/internal/domain"
	"artesano-backend/pkg/logger"
)

type notificationUsecase struct {
	resolver  domain.TemplateResolver
	transport domain.MailTransport
	from      string
	timeout   time.Duration
}

// NewNotificationUsecase wires the template resolver and mail transport.
// from is the display sender identity, e.g. `Artesano <no-reply@artesano.shop>`.
func NewNotificationUsecase(resolver domain.TemplateResolver, transport domain.MailTransport, from string, timeout time.Duration) domain.NotificationUsecase {
	return &notificationUsecase{
		resolver:  resolver,
		transport: transport,
		from:      from,
		timeout:   timeout,
	}
}

// SendEmail resolves the template for the request's type tag and delivers the
// assembled envelope in a single attempt. The transport is never invoked
// unless resolution produced a non-empty subject and body.
func (u *notificationUsecase) SendEmail(ctx context.Context, req domain.NotificationRequest) (*domain.DeliveryResult, error) {
	if strings.TrimSpace(req.Recipient) == "" {
		return nil, &domain.ValidationError{Field: "destinatario"}
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, &domain.ValidationError{Field: "type"}
	}

	payload, err := domain.DecodePayload(req.Type, req.Data)
	if err != nil {
		logger.Warn().
			Str("email_type", req.Type).
			Str("recipient", req.Recipient).
			Err(err).
			Msg("Payload rejected")
		return nil, err
	}

	tpl, err := u.resolver.Resolve(req.Type, payload)
	if err != nil {
		logger.Error().
			Str("email_type", req.Type).
			Str("recipient", req.Recipient).
			Err(err).
			Msg("Template resolution failed")
		return nil, fmt.Errorf("resolving template for %q: %w", req.Type, err)
	}
	if tpl.Subject == "" || tpl.HTMLBody == "" {
		logger.Error().
			Str("email_type", req.Type).
			Str("recipient", req.Recipient).
			Msg("Template resolved empty")
		return nil, domain.ErrEmptyTemplate
	}

	env := domain.Envelope{
		From:     u.from,
		To:       req.Recipient,
		Subject:  tpl.Subject,
		HTMLBody: tpl.HTMLBody,
	}

	// Single delivery attempt with a caller-visible deadline. No retry here:
	// retrying is the caller's decision.
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	messageID, err := u.transport.Send(ctx, env)
	logger.EmailAudit(req.Type, req.Recipient, err)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	return &domain.DeliveryResult{MessageID: messageID}, nil
}
