package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata" // run timezone must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. PPE_RUN_HORIZON
const EnvPrefix = "PPE"

// ConfigFileEnv names the variable holding an explicit config file path
const ConfigFileEnv = "PPE_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Run       RunConfig       `yaml:"run" envconfig:"RUN"`
	Quotes    QuotesConfig    `yaml:"quotes" envconfig:"QUOTES"`
	Premiums  PremiumsConfig  `yaml:"premiums" envconfig:"PREMIUMS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"45s" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"5" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/ppe.log"`
}

// RunConfig holds the constants of a PPE run
type RunConfig struct {
	HandlingCost       float64 `yaml:"handling_cost" envconfig:"HANDLING_COST" default:"40" validate:"gte=0"`
	DomesticFreight    float64 `yaml:"domestic_freight" envconfig:"DOMESTIC_FREIGHT" default:"342" validate:"gte=0"`
	OceanFreight       float64 `yaml:"ocean_freight" envconfig:"OCEAN_FREIGHT" default:"38.04" validate:"gte=0"`
	Horizon            int     `yaml:"horizon" envconfig:"HORIZON" default:"10" validate:"min=1,max=60"`
	ContractsPerSymbol int     `yaml:"contracts_per_symbol" envconfig:"CONTRACTS_PER_SYMBOL" default:"6" validate:"min=1,max=24"`
	Timezone           string  `yaml:"timezone" envconfig:"TIMEZONE" default:"America/Sao_Paulo" validate:"required"`
	FrontMonths        bool    `yaml:"front_months" envconfig:"FRONT_MONTHS" default:"false"`
	SoybeanFactor      float64 `yaml:"soybean_factor" envconfig:"SOYBEAN_FACTOR" default:"0.367437" validate:"gt=0"`
	CornFactor         float64 `yaml:"corn_factor" envconfig:"CORN_FACTOR" default:"0.393687" validate:"gt=0"`
}

// Location resolves the configured timezone
func (r RunConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

// QuotesConfig selects and tunes the futures quote source
type QuotesConfig struct {
	Provider     string        `yaml:"provider" envconfig:"PROVIDER" default:"file" validate:"oneof=http file"`
	URLTemplate  string        `yaml:"url_template" envconfig:"URL_TEMPLATE" validate:"required_if=Provider http"`
	PricePath    string        `yaml:"price_path" envconfig:"PRICE_PATH" default:"$.close" validate:"required"`
	APIKey       string        `yaml:"api_key" envconfig:"API_KEY"`
	APIKeyHeader string        `yaml:"api_key_header" envconfig:"API_KEY_HEADER" default:"X-API-Key"`
	File         string        `yaml:"file" envconfig:"FILE" default:"quotes.yaml" validate:"required_if=Provider file"`
	MaxAttempts  int           `yaml:"max_attempts" envconfig:"MAX_ATTEMPTS" default:"3" validate:"min=1,max=10"`
	RetryDelay   time.Duration `yaml:"retry_delay" envconfig:"RETRY_DELAY" default:"2s" validate:"gte=0"`
	RateLimit    float64       `yaml:"rate_limit" envconfig:"RATE_LIMIT" default:"4" validate:"gt=0"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"15s" validate:"gt=0"`
}

// PremiumsConfig selects the premium and NDF spreadsheet
type PremiumsConfig struct {
	Provider        string `yaml:"provider" envconfig:"PROVIDER" default:"workbook" validate:"oneof=sheets workbook"`
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID" validate:"required_if=Provider sheets"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE" default:"credentials.json"`
	WorkbookPath    string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH" default:"premios.xlsx" validate:"required_if=Provider workbook"`
	SoybeanTab      string `yaml:"soybean_tab" envconfig:"SOYBEAN_TAB" default:"soja" validate:"required"`
	CornTab         string `yaml:"corn_tab" envconfig:"CORN_TAB" default:"milho" validate:"required"`
	ForwardTab      string `yaml:"forward_tab" envconfig:"FORWARD_TAB" default:"ndf" validate:"required"`
}

// TelemetryConfig toggles tracing and metrics
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" default:"ppe"`
	Tracing       bool   `yaml:"tracing" envconfig:"TRACING" default:"false"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"stdout" validate:"oneof=stdout none"`
	Metrics       bool   `yaml:"metrics" envconfig:"METRICS" default:"true"`
}

// Load loads configuration from defaults, the config file when one is found,
// and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit config file. An empty path falls back
// to $PPE_CONFIG and the default locations.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	// Defaults and environment first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		// File values overlay the defaults, then explicit env vars win again
		env := cfg
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		applyEnvOverrides(reflect.ValueOf(&cfg).Elem(), reflect.ValueOf(env), EnvPrefix)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides copies every leaf field of env whose environment variable
// is set into dst. Keys follow envconfig naming: PREFIX_SECTION_FIELD, with
// the bare field tag as the alternate name.
func applyEnvOverrides(dst, env reflect.Value, prefix string) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("envconfig")
		if tag == "" {
			tag = field.Name
		}
		key := strings.ToUpper(prefix + "_" + tag)

		if field.Type.Kind() == reflect.Struct {
			applyEnvOverrides(dst.Field(i), env.Field(i), key)
			continue
		}
		_, ok := os.LookupEnv(key)
		if !ok {
			_, ok = os.LookupEnv(strings.ToUpper(field.Tag.Get("envconfig")))
		}
		if ok {
			dst.Field(i).Set(env.Field(i))
		}
	}
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.Run.Location(); err != nil {
		return fmt.Errorf("invalid run timezone %q: %w", c.Run.Timezone, err)
	}
	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(ConfigFileEnv); p != "" {
		return p
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  45 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     5,
				Burst:   10,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/ppe.log",
		},
		Run: RunConfig{
			HandlingCost:       40,
			DomesticFreight:    342,
			OceanFreight:       38.04,
			Horizon:            10,
			ContractsPerSymbol: 6,
			Timezone:           "America/Sao_Paulo",
			SoybeanFactor:      0.367437,
			CornFactor:         0.393687,
		},
		Quotes: QuotesConfig{
			Provider:     "file",
			PricePath:    "$.close",
			File:         "quotes.yaml",
			APIKeyHeader: "X-API-Key",
			MaxAttempts:  3,
			RetryDelay:   2 * time.Second,
			RateLimit:    4,
			Timeout:      15 * time.Second,
		},
		Premiums: PremiumsConfig{
			Provider:        "workbook",
			CredentialsFile: "credentials.json",
			WorkbookPath:    "premios.xlsx",
			SoybeanTab:      "soja",
			CornTab:         "milho",
			ForwardTab:      "ndf",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "ppe",
			TraceExporter: "stdout",
			Metrics:       true,
		},
	}
}
