package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"planetpal/internal/config"
)

func TestInit_None(t *testing.T) {
	cfg := &config.Config{Telemetry: config.TelemetryConfig{TraceExporter: "none"}}

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_Unknown(t *testing.T) {
	cfg := &config.Config{Telemetry: config.TelemetryConfig{TraceExporter: "zipkin"}}

	_, err := Init(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnknownExporter)
}

func TestInit_Stdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	cfg := &config.Config{Telemetry: config.TelemetryConfig{TraceExporter: "stdout", ServiceName: "planetpal-test"}}

	shutdown, err := initWith(context.Background(), cfg, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "relationship.Search")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "relationship.Search")
	assert.Contains(t, buf.String(), "planetpal-test")
}
