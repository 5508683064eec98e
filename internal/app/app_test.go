package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppecli/internal/config"
	"ppecli/internal/infrastructure"
	"ppecli/internal/services"
	"ppecli/pkg/contracts/domain"
)

type fakePPEService struct {
	calls int
}

func (f *fakePPEService) Compute(ctx context.Context) (*domain.Report, error) {
	f.calls++
	return &domain.Report{RunID: "run-1", Missing: []string{}}, nil
}

func (f *fakePPEService) Table(ctx context.Context, inst domain.Instrument) ([]domain.PPERow, error) {
	f.calls++
	return []domain.PPERow{}, nil
}

func (f *fakePPEService) Sensitivity(ctx context.Context, inst domain.Instrument, premium, forward *float64) (domain.SensitivityTable, error) {
	f.calls++
	return domain.SensitivityTable{Instrument: inst}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, providers *infrastructure.OTelProviders) (*Application, *fakePPEService) {
	t.Helper()
	cfg := config.Default()
	cfg.Security.RateLimit.Enabled = false
	svc := &fakePPEService{}
	health := services.NewHealthService("test", nil, testLogger())

	a, err := New(cfg, testLogger(), providers, svc, health)
	require.NoError(t, err)
	return a, svc
}

func do(a *Application, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(config.Default(), testLogger(), nil, nil, services.NewHealthService("test", nil, nil))
	assert.Error(t, err)

	_, err = New(nil, testLogger(), nil, &fakePPEService{}, services.NewHealthService("test", nil, nil))
	assert.Error(t, err)
}

func TestApplication_Routes(t *testing.T) {
	a, svc := newTestApp(t, nil)

	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{"health", http.MethodGet, "/api/health", http.StatusOK},
		{"readiness", http.MethodGet, "/api/health/ready", http.StatusOK},
		{"liveness", http.MethodGet, "/api/health/live", http.StatusOK},
		{"version", http.MethodGet, "/api/version", http.StatusOK},
		{"report", http.MethodGet, "/api/v1/ppe", http.StatusOK},
		{"table", http.MethodGet, "/api/v1/ppe/zc", http.StatusOK},
		{"trailing slash", http.MethodGet, "/api/v1/ppe/zs/", http.StatusOK},
		{"sensitivity", http.MethodGet, "/api/v1/ppe/milho/sensitivity", http.StatusOK},
		{"unknown instrument", http.MethodGet, "/api/v1/ppe/kc", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/v2/ppe", http.StatusNotFound},
		{"metrics disabled", http.MethodGet, "/metrics", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/api/v1/ppe", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(a, tt.method, tt.path, nil)
			assert.Equal(t, tt.expectedCode, rec.Code, rec.Body.String())
		})
	}
	assert.Equal(t, 4, svc.calls)
}

func TestApplication_Headers(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := do(a, http.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	rec = do(a, http.MethodGet, "/api/health", http.Header{"X-Request-Id": {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = do(a, http.MethodGet, "/api/does-not-exist", nil)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, float64(http.StatusNotFound), problem["status"])
}

func TestApplication_CORS(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := do(a, http.MethodOptions, "/api/v1/ppe", http.Header{
		"Origin":                        {"http://localhost:8080"},
		"Access-Control-Request-Method": {"GET"},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(a, http.MethodGet, "/api/health", http.Header{"Origin": {"http://evil.example"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestApplication_RateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Security.RateLimit.RPS = 0.001
	cfg.Security.RateLimit.Burst = 1
	a, err := New(cfg, testLogger(), nil, &fakePPEService{}, services.NewHealthService("test", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(a, http.MethodGet, "/api/health", nil).Code)
	rec := do(a, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// metrics scrapes are not rate limited
	assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, "/metrics", nil).Code)
}

func TestApplication_Metrics(t *testing.T) {
	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    "ppe-test",
		ServiceVersion: "test",
		EnableMetrics:  true,
	}, testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	a, _ := newTestApp(t, providers)
	require.Equal(t, http.StatusOK, do(a, http.MethodGet, "/api/v1/ppe", nil).Code)

	rec := do(a, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_server_requests_total")
}

func TestApplication_createServer(t *testing.T) {
	a, _ := newTestApp(t, nil)

	assert.Equal(t, ":8080", a.Server.Addr)
	assert.Equal(t, a.Config.Server.ReadTimeout, a.Server.ReadTimeout)
	assert.Equal(t, a.Config.Server.WriteTimeout, a.Server.WriteTimeout)
	assert.Equal(t, a.Config.Server.MaxHeaderBytes, a.Server.MaxHeaderBytes)
	assert.Equal(t, a.Router, a.Server.Handler)
}

func TestApplication_Serve(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewApplication_FromConfig(t *testing.T) {
	dir := t.TempDir()
	quoteFile := filepath.Join(dir, "quotes.yaml")
	require.NoError(t, os.WriteFile(quoteFile, []byte("ZCH2026: 450\n"), 0o644))

	cfg := config.Default()
	cfg.Quotes.File = quoteFile
	cfg.Premiums.WorkbookPath = filepath.Join(dir, "missing.xlsx")

	a, err := NewApplication(context.Background(), cfg, testLogger(), nil)
	require.NoError(t, err)

	rec := do(a, http.MethodGet, "/api/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "premiums")

	rec = do(a, http.MethodGet, "/api/v1/ppe", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestBuildPPEService_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Quotes.File = filepath.Join(t.TempDir(), "absent.yaml")
	_, err := BuildPPEService(context.Background(), cfg, testLogger(), nil)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Quotes.Provider = "http"
	cfg.Quotes.URLTemplate = "http://quotes.local/{ticker}"
	cfg.Premiums.Provider = "ftp"
	_, err = BuildPPEService(context.Background(), cfg, testLogger(), nil)
	assert.True(t, errors.Is(err, services.ErrUnknownProvider))
}
