package main

import (
	"os"

	"github.com/codingconcepts/env"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/anasi-bot/oauth/internal/callback"
	"github.com/anasi-bot/oauth/internal/delivery"
	"github.com/anasi-bot/oauth/internal/telemetry"
	"github.com/golden-vcr/server-common/entry"
)

const version = "1.0.0"

type Config struct {
	BindAddr   string `env:"BIND_ADDR"`
	ListenPort uint16 `env:"LISTEN_PORT" default:"5010"`

	// Webhook exposed by the Anasi bot to receive authorization codes; if unset, users
	// are always asked to paste their code into Discord manually
	BotWebhookUrl string `env:"BOT_WEBHOOK_URL"`

	OtelExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func main() {
	app, ctx := entry.NewApplication("oauth")
	defer app.Stop()

	// Parse config from environment variables
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		app.Fail("Failed to load .env file", err)
	}
	config := Config{}
	if err := env.Set(&config); err != nil {
		app.Fail("Failed to load config", err)
	}

	// Export traces for outbound webhook calls, if a collector is configured
	shutdownTracing, err := telemetry.InitTracing(ctx, config.OtelExporterEndpoint, "anasi-oauth", version)
	if err != nil {
		app.Fail("Failed to initialize tracing", err)
	}
	defer shutdownTracing()

	// Prepare a forwarder to relay authorization codes to the bot: running without a
	// webhook is a supported mode, in which every user falls back to manual entry
	forwarder := delivery.NewForwarder(config.BotWebhookUrl)
	if forwarder.IsConfigured() {
		app.Log().Info("Authorization codes will be delivered via webhook", "webhookUrl", config.BotWebhookUrl)
	} else {
		app.Log().Info("BOT_WEBHOOK_URL not set; authorization codes must be entered manually")
	}

	// Start setting up our HTTP handlers, using gorilla/mux for routing
	r := mux.NewRouter()

	// Twitch redirects the user's browser to GET /api/auth/twitch once they've
	// authorized our app, with the authorization code in the query string
	callbackServer := callback.NewServer(forwarder.Forward)
	callbackServer.RegisterRoutes(r)

	// Prometheus can scrape GET /metrics for callback and webhook delivery counts
	r.Path("/metrics").Methods("GET").Handler(telemetry.Handler())

	// Handle incoming HTTP connections until our top-level context is canceled, at
	// which point shut down cleanly
	entry.RunServer(ctx, app.Log(), r, config.BindAddr, config.ListenPort)
}
