package premiums

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"ppecli/internal/alignment"
)

// WorkbookSource reads the tables from a local xlsx file
type WorkbookSource struct {
	path   string
	tabs   Tabs
	logger *slog.Logger
}

// NewWorkbookSource creates a source for the workbook at path
func NewWorkbookSource(path string, tabs Tabs, logger *slog.Logger) *WorkbookSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookSource{path: path, tabs: tabs, logger: logger}
}

// Load implements Source
func (s *WorkbookSource) Load(ctx context.Context) (*Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	read := func(tab string) ([][]string, error) {
		for _, name := range sheets {
			if alignment.Fold(name) == alignment.Fold(tab) {
				rows, err := f.GetRows(name)
				if err != nil {
					return nil, fmt.Errorf("read tab %q: %w", name, err)
				}
				return rows, nil
			}
		}
		return nil, fmt.Errorf("%w: %q in %s", ErrTabNotFound, tab, s.path)
	}

	tables, err := load(read, s.tabs, s.logger)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "premium workbook loaded",
		slog.String("path", s.path),
		slog.Int("ndf_entries", tables.Forward.Len()))
	return tables, nil
}
