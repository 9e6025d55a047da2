// Package telemetry holds the Prometheus metrics recorded while handling OAuth
// callbacks, along with optional OpenTelemetry tracing for outbound webhook calls.
package telemetry
