package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func TestInitNone(t *testing.T) {
	for _, exporter := range []string{"", ExporterNone} {
		shutdown, err := Init(context.Background(), Config{TraceExporter: exporter})
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	}
}

func TestInitUnknown(t *testing.T) {
	_, err := Init(context.Background(), Config{TraceExporter: "jaeger"})
	assert.ErrorIs(t, err, ErrUnknownExporter)
}

func TestInitStdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), Config{
		TraceExporter:  ExporterStdout,
		ServiceVersion: "test",
		Writer:         &buf,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry_test").Start(context.Background(), "capacity.find")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "capacity.find")
	assert.Contains(t, buf.String(), "spritebench")
}

func TestNewResource(t *testing.T) {
	res := newResource(Config{ServiceVersion: "1.2.3"})

	assert.Equal(t, semconv.SchemaURL, res.SchemaURL())
	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "spritebench", name.AsString())
	version, ok := res.Set().Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	assert.Equal(t, "1.2.3", version.AsString())

	res = newResource(Config{ServiceName: "bench"})
	name, _ = res.Set().Value(semconv.ServiceNameKey)
	assert.Equal(t, "bench", name.AsString())
	_, ok = res.Set().Value(semconv.ServiceVersionKey)
	assert.False(t, ok)
}
