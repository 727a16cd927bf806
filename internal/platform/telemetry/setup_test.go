package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-api/internal/platform/config"
	"github.com/jsamuelsen11/todo-api/internal/platform/telemetry"
)

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	p, err := telemetry.Setup(context.Background(), config.TelemetryConfig{Exporter: "otlp"}, "test")
	require.NoError(t, err)
	assert.Nil(t, p.Metrics)
	assert.NoError(t, p.Shutdown(context.Background()))
}

// Installs global providers, so not parallel.
func TestSetup_Stdout(t *testing.T) {
	p, err := telemetry.Setup(context.Background(), config.TelemetryConfig{
		Enabled:     true,
		Exporter:    telemetry.ExporterStdout,
		ServiceName: "todo-api-test",
	}, "test")
	require.NoError(t, err)
	require.NotNil(t, p.Metrics)
	assert.NotNil(t, p.Metrics.ServerRequestTotal)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_BadExporter(t *testing.T) {
	_, err := telemetry.Setup(context.Background(), config.TelemetryConfig{
		Enabled:  true,
		Exporter: "zipkin",
	}, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracer")
}

func TestProviders_ShutdownNilSafe(t *testing.T) {
	t.Parallel()

	var p *telemetry.Providers
	assert.NoError(t, p.Shutdown(context.Background()))
}
