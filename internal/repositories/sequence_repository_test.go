package repositories

import (
	"context"
	"errors"
	"testing"

	"dealerpos/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var dcSeries = Series{Name: "dc", Column: "dc_number"}

func TestSequenceNextSeedsFromLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT last_value FROM document_sequences WHERE series=\\? FOR UPDATE").
		WithArgs("dc").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}))
	mock.ExpectQuery("SELECT COALESCE\\(CAST\\(dc_number AS CHAR\\), ''\\) FROM sales_records").
		WillReturnRows(sqlmock.NewRows([]string{"dc_number"}).AddRow("0003").AddRow("bad").AddRow("0007"))
	mock.ExpectExec("INSERT INTO document_sequences").
		WithArgs("dc", int64(8)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	n, err := SequenceRepository{DB: db}.Next(context.Background(), dcSeries)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if domain.FormatDCNumber(n) != "00008" {
		t.Fatalf("got %d, want 8", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSequenceNextIncrementsLockedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("accessory_firm1").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(41)))
	mock.ExpectExec("UPDATE document_sequences SET last_value=\\? WHERE series=\\?").
		WithArgs(int64(42), "accessory_firm1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := Series{Name: "accessory_firm1", Column: "accessory_invoice_1", Prefix: "AF1-"}
	n, err := SequenceRepository{DB: db}.Next(context.Background(), s)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if n != 42 {
		t.Fatalf("got %d, want 42", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSequenceNextRespectsRaisedFloor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("accessory_firm2").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(7)))
	mock.ExpectExec("UPDATE document_sequences").
		WithArgs(int64(501), "accessory_firm2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := Series{Name: "accessory_firm2", Column: "accessory_invoice_2", Floor: 500}
	n, err := SequenceRepository{DB: db}.Next(context.Background(), s)
	if err != nil || n != 501 {
		t.Fatalf("got %d, %v", n, err)
	}
}

func TestSequenceNextConcurrentSeedConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("dc").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}))
	mock.ExpectQuery("FROM sales_records").
		WillReturnRows(sqlmock.NewRows([]string{"dc_number"}))
	mock.ExpectExec("INSERT INTO document_sequences").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'dc'"})
	mock.ExpectRollback()

	_, err = SequenceRepository{DB: db}.Next(context.Background(), dcSeries)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSequenceNextRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	boom := errors.New("lock wait timeout")
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnError(boom)
	mock.ExpectRollback()

	if _, err := (SequenceRepository{DB: db}).Next(context.Background(), dcSeries); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSequenceNextRejectsUnknownColumn(t *testing.T) {
	_, err := SequenceRepository{}.Next(context.Background(), Series{Name: "x", Column: "id; DROP TABLE"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
