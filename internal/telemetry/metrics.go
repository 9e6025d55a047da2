package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CallbacksHandled counts OAuth callback requests by the view that was rendered
	CallbacksHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anasi_oauth_callbacks_total",
		Help: "Number of OAuth callback requests handled, by resulting view",
	}, []string{"view"})

	// WebhookDeliveries counts attempts to relay an authorization code to the bot, by
	// outcome (delivered, not_configured, failed)
	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anasi_oauth_webhook_deliveries_total",
		Help: "Number of webhook delivery attempts, by outcome",
	}, []string{"outcome"})

	// WebhookDuration records how long each outbound webhook POST took
	WebhookDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "anasi_oauth_webhook_duration_seconds",
		Help:    "Duration of outbound webhook POST requests",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
)

// ObserveSince records the time elapsed since start in the given observer
func ObserveSince(obs prometheus.Observer, start time.Time) {
	obs.Observe(time.Since(start).Seconds())
}

// Handler serves all registered metrics in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}
