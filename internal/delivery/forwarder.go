package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/anasi-bot/oauth"
	"github.com/anasi-bot/oauth/internal/telemetry"
)

// DefaultTimeout bounds the entire webhook request, including reading the response
const DefaultTimeout = 10 * time.Second

// UserAgent is sent with every webhook request to identify this service
const UserAgent = "Anasi-OAuth-Server/1.0"

// HeaderDeliveryId carries a unique ID for each delivery attempt, so that the bot can
// correlate its logs with ours
const HeaderDeliveryId = "X-Anasi-Delivery-Id"

// Forwarder POSTs authorization codes to a configured webhook URL
type Forwarder struct {
	webhookUrl    string
	client        *http.Client
	newDeliveryId func() string
}

// NewForwarder initializes a Forwarder that will send codes to webhookUrl. An empty
// webhookUrl is valid: it results in a Forwarder that never makes any requests and
// always reports OutcomeNotConfigured.
func NewForwarder(webhookUrl string) *Forwarder {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = DefaultTimeout
	return &Forwarder{
		webhookUrl:    webhookUrl,
		client:        client,
		newDeliveryId: uuid.NewString,
	}
}

// IsConfigured reports whether a webhook URL has been supplied
func (f *Forwarder) IsConfigured() bool {
	return f.webhookUrl != ""
}

// Forward makes a single attempt to deliver the given code to the webhook. The
// returned error is non-nil only when the outcome is OutcomeFailed, and it's intended
// for logging: callers should not propagate it to the user.
func (f *Forwarder) Forward(ctx context.Context, code, state string) (Outcome, error) {
	if !f.IsConfigured() {
		telemetry.WebhookDeliveries.WithLabelValues(OutcomeNotConfigured.String()).Inc()
		return OutcomeNotConfigured, nil
	}

	// The user closing their browser tab shouldn't cancel delivery: we're bounded by
	// the client timeout regardless
	ctx = context.WithoutCancel(ctx)

	payload := oauth.NewWebhookPayload(code, state)
	ctx, span := telemetry.StartSpan(ctx, "webhook.deliver",
		attribute.String("discord_user_id", payload.DiscordUserId),
	)
	err := f.post(ctx, &payload)
	telemetry.EndSpan(span, err)

	outcome := OutcomeDelivered
	if err != nil {
		outcome = OutcomeFailed
	}
	telemetry.WebhookDeliveries.WithLabelValues(outcome.String()).Inc()
	return outcome, err
}

func (f *Forwarder) post(ctx context.Context, payload *oauth.WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookUrl, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to initialize webhook request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("user-agent", UserAgent)
	req.Header.Set(HeaderDeliveryId, f.newDeliveryId())

	start := time.Now()
	res, err := f.client.Do(req)
	telemetry.ObserveSince(telemetry.WebhookDuration, start)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer res.Body.Close()

	// Drain (a bounded amount of) the body so the pooled connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))

	if res.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: res.StatusCode}
	}
	return nil
}
