package premiums

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ppecli/pkg/contracts/domain"
)

func writeWorkbook(t *testing.T, tabs map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range tabs {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cellRef, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "premios.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookSourceLoad(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Soja":  {{"Mês", "Prêmio"}, {"Set/25", "+20"}, {"Jan/26", "22"}},
		"milho": {{"Mes", "Premio"}, {"Mar/26", "45"}},
		"NDF":   {{"Vencimento", "NDF"}, {"setembro/2025", "5,40"}},
	})

	src := NewWorkbookSource(path, DefaultTabs(), nil)
	tables, err := src.Load(context.Background())
	require.NoError(t, err)

	soy := tables.Premium(domain.Soybean)
	assert.Equal(t, 2, soy.Len())
	got := soy.At(domain.YearMonth{Year: 2025, Month: time.November})
	assert.Equal(t, domain.Aligned{Value: domain.Some(22), Source: "Jan/26"}, got)

	assert.Equal(t, 1, tables.Premium(domain.Corn).Len())
	fwd := tables.Forward.At(domain.YearMonth{Year: 2026, Month: time.March})
	assert.Equal(t, domain.Aligned{Value: domain.Some(5.4), Source: "Set/25"}, fwd)
}

func TestWorkbookSourceMissingTab(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"soja": {{"Mes", "Premio"}, {"Set/25", "20"}},
	})

	_, err := NewWorkbookSource(path, DefaultTabs(), nil).Load(context.Background())
	assert.True(t, errors.Is(err, ErrTabNotFound))
}

func TestWorkbookSourceMissingFile(t *testing.T) {
	_, err := NewWorkbookSource(filepath.Join(t.TempDir(), "absent.xlsx"), DefaultTabs(), nil).Load(context.Background())
	assert.Error(t, err)
}
