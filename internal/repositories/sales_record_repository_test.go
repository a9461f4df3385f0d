package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"dealerpos/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestSalesRecordAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rec := models.LedgerRecord{
		Timestamp:    time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
		DCNumber:     "00008",
		SaleType:     "Cash",
		CustomerName: "Ravi",
		FinalCost:    decimal.NewFromInt(500000),
	}
	args := make([]driver.Value, len(rec.Values()))
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	args[1] = "00008"
	mock.ExpectExec("INSERT INTO sales_records \\(timestamp, dc_number, .*accessory_invoice_2\\) VALUES").
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := SalesRecordRepository{DB: db}
	if err := repo.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSalesRecordAppendError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	boom := errors.New("sheet locked")
	mock.ExpectExec("INSERT INTO sales_records").WillReturnError(boom)

	err = SalesRecordRepository{DB: db}.Append(context.Background(), models.LedgerRecord{DCNumber: "00009"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestSalesRecordListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	ts := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(models.LedgerColumns).AddRow(
		ts, "00008", "Anand", "Bank", "Meena", "Mr. Iyer", "Finance",
		"Ravi", "98765", "Madurai", "Splendor", "Disc", "Red",
		"450000.00", "510000.00", "500000.00", "10000.00", "500.00", "0.00",
		"100000.00", "400500.00", "0.00", int64(0), int64(4),
	)
	mock.ExpectQuery("SELECT timestamp, dc_number, .* FROM sales_records ORDER BY id DESC LIMIT \\?").
		WithArgs(int64(50)).
		WillReturnRows(rows)

	out, err := SalesRecordRepository{DB: db}.ListRecent(context.Background(), 50)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	got := out[0]
	if got.DCNumber != "00008" || got.BankerName != "Mr. Iyer" || got.AccessoryInvoice2 != 4 {
		t.Fatalf("unexpected record %+v", got)
	}
	if !got.DownPayment.Equal(decimal.NewFromInt(400500)) {
		t.Fatalf("down payment = %s", got.DownPayment)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
