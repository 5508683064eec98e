package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppecli/internal/config"
	"ppecli/internal/premiums"
	"ppecli/internal/quotes"
)

func TestNewFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ZCH2026: 452.25\n"), 0o600))

	cfg := config.Default().Quotes
	cfg.File = path

	f, err := NewFetcher(cfg, discardLogger())
	require.NoError(t, err)
	price, err := f.Fetch(context.Background(), "ZCH2026")
	require.NoError(t, err)
	assert.Equal(t, 452.25, price)

	cfg.Provider = "http"
	cfg.URLTemplate = "http://localhost/quote/{ticker}"
	f, err = NewFetcher(cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &quotes.HTTPFetcher{}, f)

	cfg.Provider = "carrier-pigeon"
	_, err = NewFetcher(cfg, discardLogger())
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewPremiumSource(t *testing.T) {
	cfg := config.Default().Premiums

	src, err := NewPremiumSource(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &premiums.WorkbookSource{}, src)

	cfg.Provider = "sheets"
	cfg.SpreadsheetID = ""
	_, err = NewPremiumSource(context.Background(), cfg, discardLogger())
	assert.Error(t, err)

	cfg.Provider = "csv"
	_, err = NewPremiumSource(context.Background(), cfg, discardLogger())
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestTabsFrom(t *testing.T) {
	assert.Equal(t, premiums.DefaultTabs(), TabsFrom(config.Default().Premiums))
	assert.Len(t, CollectOptions(config.Default().Quotes), 3)
}
