package repositories

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes sheets into an in-memory xlsx and returns its bytes.
func buildWorkbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := true
	for name, rows := range sheets {
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
			r := row
			require.NoError(t, f.SetSheetRow(name, cellRef, &r))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func openerFor(data []byte) func() (*excelize.File, error) {
	return func() (*excelize.File, error) {
		return excelize.OpenReader(bytes.NewReader(data))
	}
}

func fullReferenceSheets() map[string][][]any {
	return map[string][][]any{
		models.TableStaff:      {{"executive_name"}, {"Anand"}, {"Divya"}},
		models.TableExecutives: {{"finance_exectives"}, {"Meena"}},
		models.TableFinanciers: {{"finance_company", "incentive_type", "incentive_value"}, {"Shriram", "fixed_file", "1500"}},
		models.TablePriceList:  {{"MODEL", "VARIANT", "ORP", "FINAL PRICE"}, {"Splendor", "Drum", "75000", "82000"}},
		models.TableColors:     {{"MODEL", "Color_List"}, {"Splendor", "Black.Blue"}},
		models.TableBOM:        {{"MODEL", "ACC1_NAME", "ACC1_PRICE"}, {"Splendor", "Guard", "900"}},
		models.TableFirms:      {{"FIRM_ID", "NAME"}},
	}
}

func TestWorkbookSourceLoad(t *testing.T) {
	data := buildWorkbook(t, fullReferenceSheets())

	tables, err := WorkbookSource{Path: "mem.xlsx", Open: openerFor(data)}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, len(models.ReferenceTables))

	require.Equal(t, []string{"executive_name"}, tables[models.TableStaff].Header)
	require.Len(t, tables[models.TableStaff].Rows, 2)
	// header-only sheet loads as an empty table
	require.Empty(t, tables[models.TableFirms].Rows)

	ref, err := models.BuildReferenceData(tables)
	require.NoError(t, err)
	require.Equal(t, []string{"Black", "Blue"}, ref.ColorsFor("Splendor"))
	require.Equal(t, domain.IncentiveFixedFile, ref.IncentiveRules["Shriram"].Kind)
}

func TestWorkbookSourceMissingSheet(t *testing.T) {
	sheets := fullReferenceSheets()
	delete(sheets, models.TableColors)
	data := buildWorkbook(t, sheets)

	_, err := WorkbookSource{Open: openerFor(data)}.Load(context.Background())
	var refErr domain.ReferenceDataError
	require.True(t, errors.As(err, &refErr), "got %v", err)
	require.Equal(t, models.TableColors, refErr.Table)
}

func TestWorkbookSourceOpenFailure(t *testing.T) {
	_, err := WorkbookSource{Path: "/nonexistent/reference.xlsx"}.Load(context.Background())
	require.True(t, domain.IsReferenceData(err), "got %v", err)
}
