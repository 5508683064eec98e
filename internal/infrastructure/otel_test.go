package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOTelInitialization(t *testing.T) {
	var traces bytes.Buffer
	cfg := &OTelConfig{
		ServiceName:    "ppe-test",
		ServiceVersion: "test",
		Environment:    "test",
		TraceExporter:  "stdout",
		TraceWriter:    &traces,
		EnableMetrics:  true,
		EnableTracing:  true,
		SampleRatio:    1.0,
	}

	providers, err := InitializeOTel(cfg, testLogger())
	require.NoError(t, err)

	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Registry)

	ctx, span := providers.Tracer.Start(context.Background(), "test-operation")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("boom"))
	span.End()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, providers.Shutdown(shutdownCtx))
	assert.Contains(t, traces.String(), "test-operation")
}

func TestOTelDisabledUsesNoop(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: "ppe-test"}, testLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	metrics, err := NewPPEMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordRun(context.Background(), time.Second, nil)
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestUnsupportedTraceExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{EnableTracing: true, TraceExporter: "jaeger"}, testLogger())
	assert.Error(t, err)
}

func TestPPEMetricsExportedToPrometheus(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: "ppe-test", EnableMetrics: true}, testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := NewPPEMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordRun(ctx, 1500*time.Millisecond, nil)
	metrics.RecordRun(ctx, 200*time.Millisecond, errors.New("sheet unavailable"))
	metrics.RecordQuoteFailure(ctx, "ZCH2026")

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "ppe_runs_total")
	assert.Contains(t, body, "ppe_quote_failures_total")
	assert.Contains(t, body, "ppe_run_duration_seconds")
	assert.Contains(t, body, `ticker="ZCH2026"`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNilPPEMetricsIsSafe(t *testing.T) {
	var m *PPEMetrics
	m.RecordRun(context.Background(), time.Second, nil)
	m.RecordQuoteFailure(context.Background(), "ZCH2026")
}
