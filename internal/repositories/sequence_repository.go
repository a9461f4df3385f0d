package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "dealerpos/internal/config"
	intdb "dealerpos/internal/db"
	"dealerpos/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// Series describes one independent numbering sequence.
type Series struct {
	Name   string
	Column string // ledger column the series was historically read from
	Prefix string
	Floor  int64
}

// Known ledger columns a series may be seeded from.
var seriesColumns = map[string]bool{
	"dc_number":           true,
	"accessory_invoice_1": true,
	"accessory_invoice_2": true,
}

// SequenceRepository hands out document numbers. Each allocation locks the
// series row for the duration of a transaction, so two submitters never
// receive the same number. The first allocation of a series seeds the row
// from the highest number already in the ledger.
type SequenceRepository struct {
	DB *sql.DB
}

func (r SequenceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Next allocates the next number of s.
func (r SequenceRepository) Next(ctx context.Context, s Series) (n int64, err error) {
	if !seriesColumns[s.Column] {
		return 0, domain.ValidationError{Field: "series", Msg: "unknown ledger column " + s.Column}
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var last int64
	err = tx.QueryRowContext(ctx,
		`SELECT last_value FROM `+intdb.TableSequences+` WHERE series=? FOR UPDATE`, s.Name,
	).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		n, err = r.seed(ctx, tx, s)
		if err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		if last < s.Floor {
			last = s.Floor
		}
		n = last + 1
		if _, err = tx.ExecContext(ctx,
			`UPDATE `+intdb.TableSequences+` SET last_value=? WHERE series=?`, n, s.Name,
		); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (r SequenceRepository) seed(ctx context.Context, tx *sql.Tx, s Series) (int64, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT COALESCE(CAST(`+s.Column+` AS CHAR), '') FROM `+intdb.TableSalesRecords)
	if err != nil {
		return 0, err
	}
	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return 0, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	n := domain.NextSequence(values, "", s.Floor)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO `+intdb.TableSequences+` (series, last_value) VALUES (?, ?)`, s.Name, n)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == 1062 {
			return 0, domain.ConflictError{Resource: "sequence " + s.Name, Msg: "allocated concurrently, submit again", Err: err}
		}
		return 0, err
	}
	return n, nil
}
