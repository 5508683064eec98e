package premiums

import (
	"fmt"
	"log/slog"

	"ppecli/internal/alignment"
	"ppecli/pkg/contracts/domain"
)

// rowReader returns the cell values of a tab, header row first
type rowReader func(tab string) ([][]string, error)

// load reads every configured tab through read and builds the series
func load(read rowReader, tabs Tabs, logger *slog.Logger) (*Tables, error) {
	out := &Tables{Premiums: make(map[domain.Instrument]alignment.Series, len(domain.Instruments))}

	for _, inst := range domain.Instruments {
		tab := tabs.premiumTab(inst)
		rows, err := read(tab)
		if err != nil {
			return nil, err
		}
		entries, err := parsePremiumRows(rows, logger.With(slog.String("tab", tab)))
		if err != nil {
			return nil, fmt.Errorf("tab %q: %w", tab, err)
		}
		out.Premiums[inst] = alignment.NewSeries(entries)
	}

	rows, err := read(tabs.Forward)
	if err != nil {
		return nil, err
	}
	entries, err := parseForwardRows(rows, logger.With(slog.String("tab", tabs.Forward)))
	if err != nil {
		return nil, fmt.Errorf("tab %q: %w", tabs.Forward, err)
	}
	out.Forward = alignment.NewSeries(entries)

	return out, nil
}

// columnIndex returns the position of the first header matching any name
func columnIndex(header []string, names ...string) int {
	for i, h := range header {
		folded := alignment.Fold(h)
		for _, n := range names {
			if folded == n {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parsePremiumRows(rows [][]string, logger *slog.Logger) ([]domain.SeriesEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	monthCol := columnIndex(rows[0], "mes")
	if monthCol < 0 {
		return nil, fmt.Errorf("%w: mes", ErrMissingColumn)
	}
	valueCol := columnIndex(rows[0], "premio")
	if valueCol < 0 {
		return nil, fmt.Errorf("%w: premio", ErrMissingColumn)
	}

	var out []domain.SeriesEntry
	for i, row := range rows[1:] {
		label := alignment.NormalizePremiumLabel(cell(row, monthCol))
		period, ok := alignment.ParsePremiumLabel(label)
		if !ok {
			logger.Debug("skipping premium row", slog.Int("row", i+2), slog.String("mes", label))
			continue
		}
		v, ok := alignment.ParsePremiumValue(cell(row, valueCol))
		if !ok {
			logger.Debug("skipping premium row", slog.Int("row", i+2), slog.String("premio", cell(row, valueCol)))
			continue
		}
		out = append(out, domain.SeriesEntry{Period: period, Value: v, Label: label})
	}
	return out, nil
}

func parseForwardRows(rows [][]string, logger *slog.Logger) ([]domain.SeriesEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	dateCol := columnIndex(rows[0], "vencimento")
	if dateCol < 0 {
		return nil, fmt.Errorf("%w: vencimento", ErrMissingColumn)
	}
	valueCol := columnIndex(rows[0], "ndf", "ultimo")
	if valueCol < 0 {
		return nil, fmt.Errorf("%w: ndf", ErrMissingColumn)
	}

	var out []domain.SeriesEntry
	for i, row := range rows[1:] {
		period, ok := alignment.ParseForwardLabel(cell(row, dateCol))
		if !ok {
			logger.Debug("skipping ndf row", slog.Int("row", i+2), slog.String("vencimento", cell(row, dateCol)))
			continue
		}
		v, ok := alignment.ParseForwardValue(cell(row, valueCol))
		if !ok {
			logger.Debug("skipping ndf row", slog.Int("row", i+2), slog.String("ndf", cell(row, valueCol)))
			continue
		}
		out = append(out, domain.SeriesEntry{Period: period, Value: v, Label: alignment.MonthLabel(period)})
	}
	return out, nil
}
