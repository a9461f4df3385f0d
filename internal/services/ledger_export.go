package services

import (
	"context"
	"fmt"
	"time"

	"dealerpos/internal/domain/models"
	"dealerpos/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Sales_Records"

type LedgerLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.LedgerRecord, error)
}

// LedgerExportService writes the ledger to an .xlsx workbook.
type LedgerExportService struct {
	Records LedgerLister
	Now     func() time.Time
}

// Export returns the newest limit rows as a workbook and its file name.
func (s LedgerExportService) Export(ctx context.Context, limit int) ([]byte, string, error) {
	records, err := s.Records.ListRecent(ctx, limit)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, "", err
	}

	header := make([]any, len(models.LedgerColumns))
	for i, c := range models.LedgerColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(ledgerSheet, "A1", &header); err != nil {
		return nil, "", err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	if err := f.SetRowStyle(ledgerSheet, 1, 1, bold); err != nil {
		return nil, "", err
	}
	lastCol, err := excelize.ColumnNumberToName(len(models.LedgerColumns))
	if err != nil {
		return nil, "", err
	}
	if err := f.SetColWidth(ledgerSheet, "A", lastCol, 18); err != nil {
		return nil, "", err
	}

	for i, rec := range records {
		row := sheetRow(rec)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "ledger", "export", fmt.Sprintf("rows=%d", len(records)))
	return buf.Bytes(), "sales_records_" + now.Format("20060102") + ".xlsx", nil
}

// sheetRow keeps amounts numeric so the sheet can sum them.
func sheetRow(rec models.LedgerRecord) []any {
	values := rec.Values()
	for i, v := range values {
		if d, ok := v.(decimal.Decimal); ok {
			values[i] = d.InexactFloat64()
		}
	}
	return values
}
