package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayloadSelectsShapeByType(t *testing.T) {
	raw := json.RawMessage(`{
		"orderId": "ORD-1042",
		"customerName": "Ana",
		"items": [{"name": "Red Vase", "quantity": 1, "price": 34.5}],
		"total": 34.5
	}`)

	payload, err := DecodePayload(EmailTypeOrderConfirmation, raw)
	require.NoError(t, err)

	order, ok := payload.(OrderConfirmationData)
	require.True(t, ok)
	assert.Equal(t, "ORD-1042", order.OrderID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Red Vase", order.Items[0].Name)

	bindings := order.Bindings()
	assert.Equal(t, "ORD-1042", bindings["order_id"])
	assert.Equal(t, 34.5, bindings["total"])
}

func TestDecodePayloadNilDataIsZeroPayload(t *testing.T) {
	payload, err := DecodePayload(EmailTypeWelcome, nil)
	require.NoError(t, err)

	welcome, ok := payload.(WelcomeData)
	require.True(t, ok)
	assert.Empty(t, welcome.Name)
}

func TestDecodePayloadUnknownType(t *testing.T) {
	_, err := DecodePayload("newsletter_blast", nil)
	assert.ErrorIs(t, err, ErrUnknownEmailType)
}

func TestDecodePayloadMalformedData(t *testing.T) {
	_, err := DecodePayload(EmailTypeWelcome, json.RawMessage(`{"name":`))
	assert.Error(t, err)
}
