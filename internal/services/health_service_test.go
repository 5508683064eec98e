package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppecli/internal/config"
)

func TestHealthServiceReadiness(t *testing.T) {
	tests := []struct {
		name     string
		checks   map[string]HealthCheck
		expected string
	}{
		{
			name:     "no checks",
			expected: "ready",
		},
		{
			name: "all passing",
			checks: map[string]HealthCheck{
				"quotes": func(ctx context.Context) error { return nil },
			},
			expected: "ready",
		},
		{
			name: "one failing",
			checks: map[string]HealthCheck{
				"quotes":   func(ctx context.Context) error { return nil },
				"premiums": func(ctx context.Context) error { return errors.New("workbook missing") },
			},
			expected: "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthService("1.0.0", tt.checks, discardLogger())
			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.expected, status.Status)
			assert.Len(t, status.Services, len(tt.checks))
		})
	}
}

func TestHealthServiceLiveness(t *testing.T) {
	hs := NewHealthService("1.0.0", nil, nil)

	assert.Equal(t, "ok", hs.HealthCheck(context.Background()).Status)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	assert.Equal(t, "1.0.0", hs.Version().Version)
}

func TestConfigChecks(t *testing.T) {
	dir := t.TempDir()
	quoteFile := filepath.Join(dir, "quotes.yaml")
	require.NoError(t, os.WriteFile(quoteFile, []byte("ZCH2026: 450\n"), 0o600))

	cfg := config.Default()
	cfg.Quotes.File = quoteFile
	cfg.Premiums.WorkbookPath = filepath.Join(dir, "missing.xlsx")

	checks := ConfigChecks(cfg)
	require.Contains(t, checks, "quotes")
	require.Contains(t, checks, "premiums")
	assert.NoError(t, checks["quotes"](context.Background()))
	assert.Error(t, checks["premiums"](context.Background()))
	assert.Error(t, FileCheck(dir)(context.Background()))
}
