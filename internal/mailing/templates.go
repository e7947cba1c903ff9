// Package mailing resolves email type tags into rendered subjects and HTML
// bodies using the Liquid template language.
package mailing

import (
	"fmt"
	"sync"

	"github.com/osteele/liquid"

	"artesano-backend/internal/domain"
)

type emailTemplate struct {
	subject string
	html    string
}

// templates maps each type tag to its subject and body sources. The set of
// valid tags is exactly the keys of this map.
var templates = map[string]emailTemplate{
	domain.EmailTypeOrderConfirmation: {
		subject: `Order {{ order_id }} confirmed`,
		html: `<div style="font-family:Georgia,serif;max-width:560px;margin:0 auto;color:#2b2b2b">
  <h1 style="font-weight:normal">Thank you, {{ customer_name | default: "friend" }}!</h1>
  <p>Your order <strong>{{ order_id }}</strong> has been confirmed. Here is what you ordered:</p>
  <table style="width:100%;border-collapse:collapse">
    {% for item in items %}
    <tr style="border-bottom:1px solid #e5e0d8">
      <td style="padding:8px 0">{{ item.name }}</td>
      <td style="padding:8px 0;text-align:center">x{{ item.quantity }}</td>
      <td style="padding:8px 0;text-align:right">{{ item.price | currency }}</td>
    </tr>
    {% endfor %}
  </table>
  <p style="text-align:right;font-size:18px">Total: <strong>{{ total | currency }}</strong></p>
  <p>We will let you know as soon as it ships.</p>
</div>`,
	},
	domain.EmailTypeWelcome: {
		subject: `Welcome to Artesano`,
		html: `<div style="font-family:Georgia,serif;max-width:560px;margin:0 auto;color:#2b2b2b">
  <h1 style="font-weight:normal">Welcome, {{ name | default: "friend" }}!</h1>
  <p>Your account is ready. Browse our handcrafted collection and find something you love.</p>
</div>`,
	},
	domain.EmailTypePasswordReset: {
		subject: `Reset your Artesano password`,
		html: `<div style="font-family:Georgia,serif;max-width:560px;margin:0 auto;color:#2b2b2b">
  <h1 style="font-weight:normal">Password reset</h1>
  <p>Someone requested a password reset for your account. If that was you, use the link below.</p>
  <p><a href="{{ reset_link }}" style="color:#8a5a2b">Reset password</a></p>
  <p>This link expires in {{ expires_in | default: "15 minutes" }}. If you did not ask for this, ignore this email.</p>
</div>`,
	},
	domain.EmailTypeShippingUpdate: {
		subject: `Your order {{ order_id }} is {{ status }}`,
		html: `<div style="font-family:Georgia,serif;max-width:560px;margin:0 auto;color:#2b2b2b">
  <h1 style="font-weight:normal">Shipping update</h1>
  <p>Order <strong>{{ order_id }}</strong> is now <strong>{{ status }}</strong>.</p>
  {% if tracking_url != "" %}
  <p><a href="{{ tracking_url }}" style="color:#8a5a2b">Track your package</a></p>
  {% endif %}
</div>`,
	},
}

// Resolver renders email templates with per-type payloads. Parsed templates
// are cached after first use.
type Resolver struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

func NewResolver() *Resolver {
	engine := liquid.NewEngine()

	// Currency formatting: {{ price | currency }}
	engine.RegisterFilter("currency", func(value interface{}) string {
		switch v := value.(type) {
		case float64:
			return fmt.Sprintf("$%.2f", v)
		case float32:
			return fmt.Sprintf("$%.2f", float64(v))
		case int:
			return fmt.Sprintf("$%.2f", float64(v))
		case int64:
			return fmt.Sprintf("$%.2f", float64(v))
		default:
			return fmt.Sprintf("%v", value)
		}
	})

	return &Resolver{engine: engine}
}

func (r *Resolver) Resolve(emailType string, payload domain.EmailPayload) (*domain.ResolvedTemplate, error) {
	tpl, ok := templates[emailType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEmailType, emailType)
	}

	var bindings map[string]interface{}
	if payload != nil {
		bindings = payload.Bindings()
	}

	subject, err := r.render("subject:"+emailType, tpl.subject, bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering subject for %s: %w", emailType, err)
	}
	body, err := r.render("body:"+emailType, tpl.html, bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering body for %s: %w", emailType, err)
	}

	return &domain.ResolvedTemplate{Subject: subject, HTMLBody: body}, nil
}

func (r *Resolver) render(cacheKey, source string, bindings map[string]interface{}) (string, error) {
	if cached, ok := r.cache.Load(cacheKey); ok {
		return cached.(*liquid.Template).RenderString(bindings)
	}

	tpl, err := r.engine.ParseString(source)
	if err != nil {
		return "", err
	}
	r.cache.Store(cacheKey, tpl)

	return tpl.RenderString(bindings)
}
