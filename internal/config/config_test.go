package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.RateLimit.Enabled)

				assert.Equal(t, 40.0, cfg.Run.HandlingCost)
				assert.Equal(t, 342.0, cfg.Run.DomesticFreight)
				assert.Equal(t, 38.04, cfg.Run.OceanFreight)
				assert.Equal(t, 10, cfg.Run.Horizon)
				assert.Equal(t, 6, cfg.Run.ContractsPerSymbol)
				assert.Equal(t, "America/Sao_Paulo", cfg.Run.Timezone)
				assert.Equal(t, 0.367437, cfg.Run.SoybeanFactor)
				assert.Equal(t, 0.393687, cfg.Run.CornFactor)
				assert.False(t, cfg.Run.FrontMonths)

				assert.Equal(t, "$.close", cfg.Quotes.PricePath)
				assert.Equal(t, 3, cfg.Quotes.MaxAttempts)
				assert.Equal(t, 2*time.Second, cfg.Quotes.RetryDelay)

				assert.Equal(t, "soja", cfg.Premiums.SoybeanTab)
				assert.Equal(t, "milho", cfg.Premiums.CornTab)
				assert.Equal(t, "ndf", cfg.Premiums.ForwardTab)
			},
		},
		{
			name: "environment variables",
			env: map[string]string{
				"PPE_SERVER_PORT":             "9090",
				"PPE_RUN_HANDLING_COST":       "45.5",
				"PPE_RUN_HORIZON":             "12",
				"PPE_RUN_FRONT_MONTHS":        "true",
				"PPE_QUOTES_PROVIDER":         "http",
				"PPE_QUOTES_URL_TEMPLATE":     "https://quotes.example.com/{ticker}",
				"PPE_PREMIUMS_PROVIDER":       "sheets",
				"PPE_PREMIUMS_SPREADSHEET_ID": "sheet-123",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 45.5, cfg.Run.HandlingCost)
				assert.Equal(t, 12, cfg.Run.Horizon)
				assert.True(t, cfg.Run.FrontMonths)
				assert.Equal(t, "http", cfg.Quotes.Provider)
				assert.Equal(t, "sheet-123", cfg.Premiums.SpreadsheetID)
			},
		},
		{
			name:    "invalid port number",
			env:     map[string]string{"PPE_SERVER_PORT": "99999"},
			wantErr: true,
		},
		{
			name:    "zero horizon",
			env:     map[string]string{"PPE_RUN_HORIZON": "0"},
			wantErr: true,
		},
		{
			name:    "unknown quote provider",
			env:     map[string]string{"PPE_QUOTES_PROVIDER": "scraper"},
			wantErr: true,
		},
		{
			name:    "http provider without url template",
			env:     map[string]string{"PPE_QUOTES_PROVIDER": "http"},
			wantErr: true,
		},
		{
			name:    "sheets provider without spreadsheet id",
			env:     map[string]string{"PPE_PREMIUMS_PROVIDER": "sheets"},
			wantErr: true,
		},
		{
			name:    "unknown timezone",
			env:     map[string]string{"PPE_RUN_TIMEZONE": "Mars/Olympus_Mons"},
			wantErr: true,
		},
		{
			name: "config file with environment override",
			env: map[string]string{
				"PPE_SERVER_PORT":   "7070",
				"PPE_LOGGING_LEVEL": "warn",
			},
			file: `
server:
  port: 6060
  read_timeout: 20s
logging:
  level: error
run:
  domestic_freight: 300
  front_months: true
security:
  enable_cors: false
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 300.0, cfg.Run.DomesticFreight)
				assert.True(t, cfg.Run.FrontMonths)
				assert.False(t, cfg.Security.EnableCORS)
				assert.Equal(t, 40.0, cfg.Run.HandlingCost)
			},
		},
		{
			name:    "malformed config file",
			file:    "server: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigFileEnv, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				t.Setenv(ConfigFileEnv, writeConfigFile(t, tt.file))
			}

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Run.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestDefaultMatchesStructTags(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestValidateCORSOrigins(t *testing.T) {
	cfg := Default()
	cfg.Security.AllowedOrigins = nil
	assert.Error(t, cfg.Validate())

	cfg.Security.EnableCORS = false
	assert.NoError(t, cfg.Validate())
}
