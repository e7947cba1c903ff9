package domain

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// Email type tags. Each tag has its own payload shape, decoded by DecodePayload.
const (
	EmailTypeOrderConfirmation = "order_confirmation"
	EmailTypeWelcome           = "welcome"
	EmailTypePasswordReset     = "password_reset"
	EmailTypeShippingUpdate    = "shipping_update"
)

var EmailTypes = []string{
	EmailTypeOrderConfirmation,
	EmailTypeWelcome,
	EmailTypePasswordReset,
	EmailTypeShippingUpdate,
}

// NotificationRequest is the inbound send-email request. Data stays raw until
// the type tag selects the payload shape.
type NotificationRequest struct {
	Recipient string          `json:"destinatario"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
}

// EmailPayload is the per-type template data contract.
type EmailPayload interface {
	Bindings() map[string]interface{}
}

type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderConfirmationData struct {
	OrderID      string      `json:"orderId"`
	CustomerName string      `json:"customerName"`
	Items        []OrderLine `json:"items"`
	Total        float64     `json:"total"`
}

func (d OrderConfirmationData) Bindings() map[string]interface{} {
	items := make([]map[string]interface{}, len(d.Items))
	for i, it := range d.Items {
		items[i] = map[string]interface{}{
			"name":     it.Name,
			"quantity": it.Quantity,
			"price":    it.Price,
		}
	}
	return map[string]interface{}{
		"order_id":      d.OrderID,
		"customer_name": d.CustomerName,
		"items":         items,
		"total":         d.Total,
	}
}

type WelcomeData struct {
	Name string `json:"name"`
}

func (d WelcomeData) Bindings() map[string]interface{} {
	return map[string]interface{}{"name": d.Name}
}

type PasswordResetData struct {
	ResetLink string `json:"resetLink"`
	ExpiresIn string `json:"expiresIn"`
}

func (d PasswordResetData) Bindings() map[string]interface{} {
	return map[string]interface{}{
		"reset_link": d.ResetLink,
		"expires_in": d.ExpiresIn,
	}
}

type ShippingUpdateData struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	TrackingURL string `json:"trackingUrl"`
}

func (d ShippingUpdateData) Bindings() map[string]interface{} {
	return map[string]interface{}{
		"order_id":     d.OrderID,
		"status":       d.Status,
		"tracking_url": d.TrackingURL,
	}
}

// DecodePayload selects the payload shape for a type tag and decodes raw into
// it. A nil raw decodes to the zero payload; templates fall back to defaults.
func DecodePayload(emailType string, raw json.RawMessage) (EmailPayload, error) {
	decode := func(dst interface{}) error {
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("decoding %s payload: %w", emailType, err)
		}
		return nil
	}

	switch emailType {
	case EmailTypeOrderConfirmation:
		var d OrderConfirmationData
		if err := decode(&d); err != nil {
			return nil, err
		}
		return d, nil
	case EmailTypeWelcome:
		var d WelcomeData
		if err := decode(&d); err != nil {
			return nil, err
		}
		return d, nil
	case EmailTypePasswordReset:
		var d PasswordResetData
		if err := decode(&d); err != nil {
			return nil, err
		}
		return d, nil
	case EmailTypeShippingUpdate:
		var d ShippingUpdateData
		if err := decode(&d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmailType, emailType)
	}
}

// ResolvedTemplate is the rendered subject and HTML body for one email.
type ResolvedTemplate struct {
	Subject  string
	HTMLBody string
}

// Envelope is the fully-assembled outbound message handed to the transport.
type Envelope struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// DeliveryResult carries the transport-assigned message id of a sent email.
type DeliveryResult struct {
	MessageID string `json:"infoId"`
}

// --- Interfaces ---

type TemplateResolver interface {
	Resolve(emailType string, payload EmailPayload) (*ResolvedTemplate, error)
}

// MailTransport delivers one envelope per call and returns the transport
// message id. No retry, no queueing.
type MailTransport interface {
	Send(ctx context.Context, env Envelope) (string, error)
}

type NotificationUsecase interface {
	SendEmail(ctx context.Context, req NotificationRequest) (*DeliveryResult, error)
}
