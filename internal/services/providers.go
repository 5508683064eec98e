package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"ppecli/internal/config"
	"ppecli/internal/premiums"
	"ppecli/internal/quotes"
)

// NewFetcher builds the quote fetcher selected by cfg.Provider
func NewFetcher(cfg config.QuotesConfig, logger *slog.Logger) (quotes.Fetcher, error) {
	switch cfg.Provider {
	case "http":
		opts := []quotes.HTTPOption{
			quotes.WithTimeout(cfg.Timeout),
			quotes.WithHTTPLogger(logger),
		}
		if cfg.APIKey != "" {
			opts = append(opts, quotes.WithHeader(cfg.APIKeyHeader, cfg.APIKey))
		}
		return quotes.NewHTTPFetcher(cfg.URLTemplate, cfg.PricePath, opts...), nil
	case "file":
		f, err := quotes.NewFileFetcher(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("open quote file: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: quotes %q", ErrUnknownProvider, cfg.Provider)
	}
}

// CollectOptions maps retry and pacing settings onto quote collection
// options. The limiter is shared by every run of the process.
func CollectOptions(cfg config.QuotesConfig) []quotes.CollectOption {
	return []quotes.CollectOption{
		quotes.WithAttempts(cfg.MaxAttempts),
		quotes.WithRetryDelay(cfg.RetryDelay),
		quotes.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)),
	}
}

// TabsFrom maps the configured tab names
func TabsFrom(cfg config.PremiumsConfig) premiums.Tabs {
	return premiums.Tabs{
		Soybean: cfg.SoybeanTab,
		Corn:    cfg.CornTab,
		Forward: cfg.ForwardTab,
	}
}

// NewPremiumSource builds the premium and NDF source selected by cfg.Provider
func NewPremiumSource(ctx context.Context, cfg config.PremiumsConfig, logger *slog.Logger) (premiums.Source, error) {
	tabs := TabsFrom(cfg)
	switch cfg.Provider {
	case "sheets":
		src, err := premiums.NewSheetsSource(ctx, cfg.SpreadsheetID, tabs, logger,
			option.WithCredentialsFile(cfg.CredentialsFile))
		if err != nil {
			return nil, fmt.Errorf("create sheets source: %w", err)
		}
		return src, nil
	case "workbook":
		return premiums.NewWorkbookSource(cfg.WorkbookPath, tabs, logger), nil
	default:
		return nil, fmt.Errorf("%w: premiums %q", ErrUnknownProvider, cfg.Provider)
	}
}
