package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "dealerpos/internal/config"
	intdb "dealerpos/internal/db"
	"dealerpos/internal/domain/models"
)

// SalesRecordRepository is the append-only sales ledger.
type SalesRecordRepository struct {
	DB *sql.DB
}

func (r SalesRecordRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func ledgerColumnList() string {
	return strings.Join(models.LedgerColumns, ", ")
}

// Append inserts one ledger row.
func (r SalesRecordRepository) Append(ctx context.Context, rec models.LedgerRecord) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(models.LedgerColumns)), ",")
	query := `INSERT INTO ` + intdb.TableSalesRecords + ` (` + ledgerColumnList() + `) VALUES (` + placeholders + `)`
	if _, err := db.ExecContext(ctx, query, rec.Values()...); err != nil {
		return fmt.Errorf("append sales record %s: %w", rec.DCNumber, err)
	}
	return nil
}

// ListRecent returns up to limit ledger rows, newest first.
func (r SalesRecordRepository) ListRecent(ctx context.Context, limit int) ([]models.LedgerRecord, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	if limit <= 0 || limit > 5000 {
		limit = 5000
	}
	query := `SELECT ` + ledgerColumnList() + ` FROM ` + intdb.TableSalesRecords + ` ORDER BY id DESC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LedgerRecord{}
	for rows.Next() {
		var rec models.LedgerRecord
		if err := rows.Scan(rec.Pointers()...); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
