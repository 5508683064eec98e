package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"time"

	"ppecli/internal/config"
	"ppecli/pkg/contracts"
)

// HealthCheck probes one dependency; a nil error means ready
type HealthCheck func(ctx context.Context) error

// HealthService provides health check functionality
type HealthService struct {
	version   string
	checks    map[string]HealthCheck
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. checks are run by ReadinessCheck.
func NewHealthService(version string, checks map[string]HealthCheck, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthService{
		version:   version,
		checks:    checks,
		startTime: time.Now(),
		logger:    logger,
	}
}

// FileCheck reports whether path exists and is a regular file
func FileCheck(path string) HealthCheck {
	return func(ctx context.Context) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		return nil
	}
}

// ConfigChecks derives readiness checks from the local files the configured
// providers depend on
func ConfigChecks(cfg *config.Config) map[string]HealthCheck {
	checks := map[string]HealthCheck{}
	if cfg.Quotes.Provider == "file" {
		checks["quotes"] = FileCheck(cfg.Quotes.File)
	}
	switch cfg.Premiums.Provider {
	case "workbook":
		checks["premiums"] = FileCheck(cfg.Premiums.WorkbookPath)
	case "sheets":
		checks["premiums"] = FileCheck(cfg.Premiums.CredentialsFile)
	}
	return checks
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck runs every dependency check
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]ServiceHealth, len(hs.checks)),
	}

	names := make([]string, 0, len(hs.checks))
	for name := range hs.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := hs.checks[name](ctx); err != nil {
			status.Status = "not_ready"
			status.Services[name] = ServiceHealth{Status: "not_ready", Message: err.Error()}
			hs.logger.WarnContext(ctx, "readiness check failed",
				slog.String("check", name),
				slog.String("error", err.Error()))
			continue
		}
		status.Services[name] = ServiceHealth{Status: "ready"}
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	if hs.version != "" {
		info.Version = hs.version
	}
	return info
}
