package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"dealerpos/internal/domain/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLedgerExportWorkbook(t *testing.T) {
	ledger := &fakeLedger{records: []models.LedgerRecord{
		{Timestamp: fixedNow, DCNumber: "00009", SaleType: "Cash", CustomerName: "Lakshmi", FinalCost: dec("530000")},
		{Timestamp: fixedNow, DCNumber: "00008", SaleType: "Finance", CustomerName: "Ravi", FinalCost: dec("500000"), AccessoryInvoice1: 41},
	}}
	svc := LedgerExportService{Records: ledger, Now: func() time.Time { return fixedNow }}

	data, name, err := svc.Export(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, "sales_records_20240815.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(ledgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, models.LedgerColumns, rows[0])
	require.Equal(t, "00009", rows[1][1])
	require.Equal(t, "Ravi", rows[2][7])
}

func TestLedgerExportPropagatesReadError(t *testing.T) {
	svc := LedgerExportService{Records: &fakeLedger{err: errors.New("timeout")}}
	_, _, err := svc.Export(context.Background(), 10)
	require.Error(t, err)
}
