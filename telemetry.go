package asynctree

import (
	"context"

	eventbus "github.com/hanpama/asynctree/internal/eventbus"
	otel "github.com/hanpama/asynctree/internal/otel"
)

// EnableTelemetry installs the in-process event bus and configures
// OpenTelemetry export to the given OTLP collector endpoint: one span per
// walk with a child span per node resolution. An empty endpoint installs
// the bus without an exporter. The returned function flushes and shuts the
// exporter down.
func EnableTelemetry(endpoint, service string) (func(context.Context) error, error) {
	eventbus.Use(eventbus.New())
	return otel.Setup(endpoint, service)
}
