package premiums

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads the tables from a Google Sheets spreadsheet
type SheetsSource struct {
	spreadsheetID string
	tabs          Tabs
	svc           *sheets.Service
	logger        *slog.Logger
}

// NewSheetsSource connects to the Sheets API with read-only scope. Callers
// usually pass option.WithCredentialsFile.
func NewSheetsSource(ctx context.Context, spreadsheetID string, tabs Tabs, logger *slog.Logger, opts ...option.ClientOption) (*SheetsSource, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSource{spreadsheetID: spreadsheetID, tabs: tabs, svc: svc, logger: logger}, nil
}

// Load implements Source
func (s *SheetsSource) Load(ctx context.Context) (*Tables, error) {
	read := func(tab string) ([][]string, error) {
		resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, tab).Context(ctx).Do()
		if err != nil {
			var gerr *googleapi.Error
			if errors.As(err, &gerr) && (gerr.Code == http.StatusBadRequest || gerr.Code == http.StatusNotFound) {
				return nil, fmt.Errorf("%w: %q: %v", ErrTabNotFound, tab, err)
			}
			return nil, fmt.Errorf("read tab %q: %w", tab, err)
		}
		return stringRows(resp.Values), nil
	}

	tables, err := load(read, s.tabs, s.logger)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "premium spreadsheet loaded",
		slog.String("spreadsheet_id", s.spreadsheetID),
		slog.Int("ndf_entries", tables.Forward.Len()))
	return tables, nil
}

func stringRows(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			out[i][j] = fmt.Sprint(v)
		}
	}
	return out
}
