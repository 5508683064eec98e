package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// TickerPlaceholder is substituted with the escaped ticker in URL templates
const TickerPlaceholder = "{ticker}"

// HTTPFetcher reads quotes from a JSON endpoint. The price is located in the
// response body with a JSONPath expression such as "$.close".
type HTTPFetcher struct {
	urlTemplate string
	path        string
	httpClient  *http.Client
	timeout     time.Duration
	headers     http.Header
	logger      *slog.Logger
}

// HTTPOption configures an HTTPFetcher
type HTTPOption func(*HTTPFetcher)

// NewHTTPFetcher creates a fetcher for urlTemplate, which must contain
// {ticker}, extracting the price at path.
func NewHTTPFetcher(urlTemplate, path string, opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		urlTemplate: urlTemplate,
		path:        path,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		headers:     http.Header{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timeout > 0 {
		// the client may be shared with the caller
		hc := *f.httpClient
		hc.Timeout = f.timeout
		f.httpClient = &hc
	}
	return f
}

// WithTimeout sets the request timeout. It applies to a private copy of the
// client, whatever the option order.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		f.httpClient = hc
	}
}

// WithHeader adds a request header, e.g. an API key
func WithHeader(key, value string) HTTPOption {
	return func(f *HTTPFetcher) {
		f.headers.Add(key, value)
	}
}

// WithHTTPLogger sets the logger
func WithHTTPLogger(logger *slog.Logger) HTTPOption {
	return func(f *HTTPFetcher) {
		f.logger = logger
	}
}

// Fetch implements Fetcher
func (f *HTTPFetcher) Fetch(ctx context.Context, ticker string) (float64, error) {
	addr := strings.ReplaceAll(f.urlTemplate, TickerPlaceholder, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range f.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &StatusError{Ticker: ticker, StatusCode: resp.StatusCode}
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode quote %s: %w", ticker, err)
	}

	v, err := extract(body, f.path)
	if err != nil {
		return 0, fmt.Errorf("quote %s: %w", ticker, err)
	}

	f.logger.Debug("quote fetched", slog.String("ticker", ticker), slog.Float64("price", v))
	return v, nil
}

// extract evaluates path against a decoded JSON document and converts the
// result to a positive finite price
func extract(doc any, path string) (float64, error) {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNoPrice, path, err)
	}
	// filters and slices yield a list, keep the first answer
	if list, ok := val.([]any); ok {
		if len(list) == 0 {
			return 0, fmt.Errorf("%w: %s matched nothing", ErrNoPrice, path)
		}
		val = list[0]
	}

	var price float64
	switch v := val.(type) {
	case float64:
		price = v
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		price, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrNoPrice, v)
		}
	default:
		return 0, fmt.Errorf("%w: unexpected %T at %s", ErrNoPrice, val, path)
	}

	return checkPrice(price)
}

func checkPrice(price float64) (float64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: non-finite price %v", ErrNoPrice, price)
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w: non-positive price %v", ErrNoPrice, price)
	}
	return price, nil
}
