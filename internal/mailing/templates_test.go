package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesano-backend/internal/domain"
)

func TestResolveEveryKnownType(t *testing.T) {
	resolver := NewResolver()

	for _, emailType := range domain.EmailTypes {
		payload, err := domain.DecodePayload(emailType, nil)
		require.NoError(t, err, emailType)

		tpl, err := resolver.Resolve(emailType, payload)
		require.NoError(t, err, emailType)

		assert.NotEmpty(t, tpl.Subject, "subject for %s", emailType)
		assert.NotEmpty(t, tpl.HTMLBody, "body for %s", emailType)
	}
}

func TestResolveOrderConfirmation(t *testing.T) {
	resolver := NewResolver()

	payload := domain.OrderConfirmationData{
		OrderID:      "ORD-1042",
		CustomerName: "Ana",
		Items: []domain.OrderLine{
			{Name: "Red Vase", Quantity: 1, Price: 34.5},
			{Name: "Ceramic Bowl", Quantity: 2, Price: 12},
		},
		Total: 58.5,
	}

	tpl, err := resolver.Resolve(domain.EmailTypeOrderConfirmation, payload)
	require.NoError(t, err)

	assert.Equal(t, "Order ORD-1042 confirmed", tpl.Subject)
	assert.Contains(t, tpl.HTMLBody, "Ana")
	assert.Contains(t, tpl.HTMLBody, "Red Vase")
	assert.Contains(t, tpl.HTMLBody, "Ceramic Bowl")
	assert.Contains(t, tpl.HTMLBody, "$34.50")
	assert.Contains(t, tpl.HTMLBody, "$58.50")
}

func TestResolvePasswordReset(t *testing.T) {
	resolver := NewResolver()

	payload := domain.PasswordResetData{
		ResetLink: "https://artesano.shop/reset?token=xyz",
		ExpiresIn: "30 minutes",
	}

	tpl, err := resolver.Resolve(domain.EmailTypePasswordReset, payload)
	require.NoError(t, err)

	assert.Contains(t, tpl.HTMLBody, "https://artesano.shop/reset?token=xyz")
	assert.Contains(t, tpl.HTMLBody, "30 minutes")
}

func TestResolveWelcomeDefaultsName(t *testing.T) {
	resolver := NewResolver()

	tpl, err := resolver.Resolve(domain.EmailTypeWelcome, domain.WelcomeData{})
	require.NoError(t, err)

	assert.Contains(t, tpl.HTMLBody, "friend")
}

func TestResolveUnknownType(t *testing.T) {
	resolver := NewResolver()

	_, err := resolver.Resolve("newsletter_blast", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownEmailType)
}
