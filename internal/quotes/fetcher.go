// Package quotes retrieves last-trade prices for futures tickers.
//
// A Fetcher resolves one ticker at a time. Collect drives a Fetcher over a
// list of tickers, pacing and retrying each request, and records any ticker
// that could not be resolved as a missing price instead of failing the run.
package quotes

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoPrice is returned when a source has no usable price for a ticker
var ErrNoPrice = errors.New("no price")

// Fetcher returns the latest price of a ticker in cents per bushel
type Fetcher interface {
	Fetch(ctx context.Context, ticker string) (float64, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, ticker string) (float64, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, ticker string) (float64, error) {
	return f(ctx, ticker)
}

// StatusError is returned when the quote endpoint answers with a non-2xx status
type StatusError struct {
	Ticker     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("quote %s: unexpected status %d", e.Ticker, e.StatusCode)
}

// Retryable reports whether another attempt may succeed
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
