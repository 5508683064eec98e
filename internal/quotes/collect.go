package quotes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"ppecli/pkg/contracts/domain"
)

// Collection defaults
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

type collector struct {
	maxAttempts int
	retryDelay  time.Duration
	limiter     *rate.Limiter
	logger      *slog.Logger
	onFailure   func(ctx context.Context, ticker string, err error)
}

// CollectOption configures Collect
type CollectOption func(*collector)

// WithAttempts sets how many times each ticker is tried
func WithAttempts(n int) CollectOption {
	return func(c *collector) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the pause between attempts
func WithRetryDelay(d time.Duration) CollectOption {
	return func(c *collector) {
		c.retryDelay = d
	}
}

// WithLimiter paces requests across tickers and retries
func WithLimiter(l *rate.Limiter) CollectOption {
	return func(c *collector) {
		c.limiter = l
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) CollectOption {
	return func(c *collector) {
		c.logger = logger
	}
}

// WithFailureHook is called once for every ticker left without a price
func WithFailureHook(fn func(ctx context.Context, ticker string, err error)) CollectOption {
	return func(c *collector) {
		c.onFailure = fn
	}
}

// Collect fetches every ticker sequentially. Tickers that still fail after
// the last attempt map to a missing price. The returned error is non-nil only
// when ctx ends before all tickers were tried; the partial result is still
// returned with the remaining tickers missing.
func Collect(ctx context.Context, f Fetcher, tickers []string, opts ...CollectOption) (map[string]domain.Amount, error) {
	c := &collector{
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		limiter:     rate.NewLimiter(rate.Inf, 1),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	out := make(map[string]domain.Amount, len(tickers))
	for _, tk := range tickers {
		out[tk] = domain.Missing
	}

	for _, tk := range tickers {
		price, err := c.fetch(ctx, f, tk)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return out, ctxErr
			}
			c.logger.WarnContext(ctx, "quote unavailable",
				slog.String("ticker", tk),
				slog.String("error", err.Error()))
			if c.onFailure != nil {
				c.onFailure(ctx, tk, err)
			}
			continue
		}
		out[tk] = domain.Some(price)
	}
	return out, nil
}

func (c *collector) fetch(ctx context.Context, f Fetcher, ticker string) (float64, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.logger.DebugContext(ctx, "retrying quote",
				slog.String("ticker", ticker),
				slog.Int("attempt", attempt),
				slog.Duration("delay", c.retryDelay))
			if err := sleep(ctx, c.retryDelay); err != nil {
				return 0, err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, err
		}

		price, err := f.Fetch(ctx, ticker)
		if err == nil {
			price, err = checkPrice(price)
		}
		if err == nil {
			return price, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && !se.Retryable() {
			break
		}
	}
	return 0, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
