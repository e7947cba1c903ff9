package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesano-backend/internal/domain"
)

const testSender = "Artesano <no-reply@artesano.shop>"

type fakeResolver struct {
	tpl   *domain.ResolvedTemplate
	err   error
	calls int
}

func (f *fakeResolver) Resolve(emailType string, payload domain.EmailPayload) (*domain.ResolvedTemplate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tpl, nil
}

type fakeTransport struct {
	messageID string
	err       error
	calls     int
	lastEnv   domain.Envelope
}

func (f *fakeTransport) Send(ctx context.Context, env domain.Envelope) (string, error) {
	f.calls++
	f.lastEnv = env
	if f.err != nil {
		return "", f.err
	}
	return f.messageID, nil
}

func validTemplate() *domain.ResolvedTemplate {
	return &domain.ResolvedTemplate{Subject: "Welcome to Artesano", HTMLBody: "<p>Hi</p>"}
}

func TestSendEmailSuccess(t *testing.T) {
	resolver := &fakeResolver{tpl: validTemplate()}
	transport := &fakeTransport{messageID: "abc123"}
	uc := NewNotificationUsecase(resolver, transport, testSender, time.Second)

	result, err := uc.SendEmail(context.Background(), domain.NotificationRequest{
		Recipient: "ana@example.com",
		Type:      domain.EmailTypeWelcome,
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123", result.MessageID)
	assert.Equal(t, 1, transport.calls)
	assert.Equal(t, testSender, transport.lastEnv.From)
	assert.Equal(t, "ana@example.com", transport.lastEnv.To)
	assert.Equal(t, "Welcome to Artesano", transport.lastEnv.Subject)
}

func TestSendEmailMissingRecipient(t *testing.T) {
	resolver := &fakeResolver{tpl: validTemplate()}
	transport := &fakeTransport{}
	uc := NewNotificationUsecase(resolver, transport, testSender, time.Second)

	_, err := uc.SendEmail(context.Background(), domain.NotificationRequest{
		Type: domain.EmailTypeWelcome,
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "destinatario", vErr.Field)
	assert.Zero(t, resolver.calls, "resolver must not run for invalid input")
	assert.Zero(t, transport.calls)
}

func TestSendEmailMissingType(t *testing.T) {
	resolver := &fakeResolver{tpl: validTemplate()}
	transport := &fakeTransport{}
	uc := NewNotificationUsecase(resolver, transport, testSender, time.Second)

	_, err := uc.SendEmail(context.Background(), domain.NotificationRequest{
		Recipient: "ana@example.com",
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "type", vErr.Field)
	assert.Zero(t, transport.calls)
}

func TestSendEmailUnknownType(t *testing.T) {
	resolver := &fakeResolver{tpl: validTemplate()}
	transport := &fakeTransport{}
	uc := NewNotificationUsecase(resolver, transport, testSender, time.Second)

	_, err := uc.SendEmail(context.Background(), domain.NotificationRequest{
		Recipient: "ana@example.com",
		Type:      "newsletter_blast",
	})

	assert.ErrorIs(t, err, domain.ErrUnknownEmailType)
	assert.Zero(t, transport.calls, "transport must observe zero invocations")
}

func TestSendEmailEmptyTemplateNeverReachesTransport(t *testing.T) {
	tests := []struct {
		name string
		tpl  *domain.ResolvedTemplate
	}{
		{"empty subject", &domain.ResolvedTemplate{Subject: "", HTMLBody: "<p>Hi</p>"}},
		{"empty body", &domain.ResolvedTemplate{Subject: "Hello", HTMLBody: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{tpl: tt.tpl}
			transport := &fakeTransport{}
			uc := NewNotificationUsecase(resolver, transport, testSender, time.Second)

			_, err := uc.SendEmail(context.Background(), domain.NotificationRequest{
				Recipient: "ana@example.com",
				Type:      domain.EmailTypeWelcome,
			})

			assert.ErrorIs(t, err, domain.ErrEmptyTemplate)
			assert.Zero(t, transport.calls)
		})
	}
}

func TestSendEmailResolverFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("template store offline")}
	transport := &fakeTransport{}
	uc := NewNotificationUsecase(resolver, transport, testSender, time.Second)

	_, err := uc.SendEmail(context.Background(), domain.NotificationRequest{
		Recipient: "ana@example.com",
		Type:      domain.EmailTypeWelcome,
	})

	require.Error(t, err)
	assert.Zero(t, transport.calls)
}

func TestSendEmailTransportFailure(t *testing.T) {
	resolver := &fakeResolver{tpl: validTemplate()}
	transport := &fakeTransport{err: errors.New("dial tcp: connection refused")}
	uc := NewNotificationUsecase(resolver, transport, testSender, time.Second)

	_, err := uc.SendEmail(context.Background(), domain.NotificationRequest{
		Recipient: "ana@example.com",
		Type:      domain.EmailTypeWelcome,
	})

	var tErr *domain.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Contains(t, tErr.Unwrap().Error(), "connection refused")
	assert.Equal(t, 1, transport.calls, "exactly one delivery attempt, no retry")
}
