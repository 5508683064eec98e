package quotes

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// FileFetcher serves quotes from a YAML document of ticker: price pairs,
// for offline runs and reproducible reports.
//
//	ZCH2026: 495.25
//	ZSF2026: 1050
//	ZCK2026: ~        # no quote
type FileFetcher struct {
	prices map[string]*float64
}

// NewFileFetcher loads the quote file at path
func NewFileFetcher(path string) (*FileFetcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quote file: %w", err)
	}
	return ParseQuoteFile(data)
}

// ParseQuoteFile builds a FileFetcher from YAML content
func ParseQuoteFile(data []byte) (*FileFetcher, error) {
	raw := make(map[string]*float64)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse quote file: %w", err)
	}

	prices := make(map[string]*float64, len(raw))
	for k, v := range raw {
		prices[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return &FileFetcher{prices: prices}, nil
}

// Fetch implements Fetcher
func (f *FileFetcher) Fetch(ctx context.Context, ticker string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v, ok := f.prices[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok || v == nil {
		return 0, fmt.Errorf("quote %s: %w", ticker, ErrNoPrice)
	}
	price, err := checkPrice(*v)
	if err != nil {
		return 0, fmt.Errorf("quote %s: %w", ticker, err)
	}
	return price, nil
}
