package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	intconfig "dealerpos/internal/config"
	intdb "dealerpos/internal/db"
	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"
)

// ReferenceKind names a list the staff may extend from the form.
type ReferenceKind string

const (
	KindStaff      ReferenceKind = "staff"
	KindExecutives ReferenceKind = "executives"
	KindFinanciers ReferenceKind = "financiers"
)

// referenceQuery maps a reference table to its SQL and canonical header.
type referenceQuery struct {
	query  string
	header []string
}

func bomQuery() referenceQuery {
	cols := []string{"model"}
	header := []string{"MODEL"}
	for i := 1; i <= models.BOMSlots; i++ {
		n := strconv.Itoa(i)
		cols = append(cols, "acc"+n+"_name", "acc"+n+"_price")
		header = append(header, "ACC"+n+"_NAME", "ACC"+n+"_PRICE")
	}
	for i := range cols {
		cols[i] = "COALESCE(" + cols[i] + ", '')"
	}
	return referenceQuery{
		query:  `SELECT ` + strings.Join(cols, ", ") + ` FROM ` + intdb.TableAccessoryBOM + ` ORDER BY model`,
		header: header,
	}
}

var referenceQueries = map[string]referenceQuery{
	models.TableStaff: {
		query:  `SELECT executive_name FROM ` + intdb.TableSalesStaff + ` ORDER BY id`,
		header: []string{"executive_name"},
	},
	models.TableExecutives: {
		query:  `SELECT finance_executive FROM ` + intdb.TableFinanceExecutives + ` ORDER BY id`,
		header: []string{"finance_exectives"},
	},
	models.TableFinanciers: {
		query: `SELECT finance_company, COALESCE(incentive_type, ''), COALESCE(incentive_value, '')
			FROM ` + intdb.TableFinanciers + ` ORDER BY id`,
		header: []string{"finance_company", "incentive_type", "incentive_value"},
	},
	models.TablePriceList: {
		query:  `SELECT model, variant, orp, final_price FROM ` + intdb.TablePriceList + ` ORDER BY id`,
		header: []string{"MODEL", "VARIANT", "ORP", "FINAL PRICE"},
	},
	models.TableColors: {
		query:  `SELECT model, color_list FROM ` + intdb.TableVehicleColors + ` ORDER BY model`,
		header: []string{"MODEL", "Color_List"},
	},
	models.TableBOM: bomQuery(),
	models.TableFirms: {
		query:  `SELECT CAST(firm_id AS CHAR), name, address, gstin, phone FROM ` + intdb.TableFirmMaster + ` ORDER BY firm_id`,
		header: []string{"FIRM_ID", "NAME", "ADDRESS", "GSTIN", "PHONE"},
	},
}

// ReferenceRepository serves reference tables from MySQL and accepts new
// staff, executive and financier names.
type ReferenceRepository struct {
	DB *sql.DB
}

func (r ReferenceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Load reads every reference table in models.ReferenceTables order.
func (r ReferenceRepository) Load(ctx context.Context) (map[string]models.Table, error) {
	db := r.db()
	if db == nil {
		return nil, domain.ReferenceDataError{Msg: "database not connected"}
	}
	out := make(map[string]models.Table, len(referenceQueries))
	for _, name := range models.ReferenceTables {
		q := referenceQueries[name]
		t, err := queryTable(ctx, db, q)
		if err != nil {
			return nil, domain.ReferenceDataError{Table: name, Err: err}
		}
		out[name] = t
	}
	return out, nil
}

func queryTable(ctx context.Context, db *sql.DB, q referenceQuery) (models.Table, error) {
	rows, err := db.QueryContext(ctx, q.query)
	if err != nil {
		return models.Table{}, err
	}
	defer rows.Close()

	t := models.Table{Header: q.header}
	for rows.Next() {
		cells := make([]sql.NullString, len(q.header))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return models.Table{}, err
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		t.Rows = append(t.Rows, row)
	}
	return t, rows.Err()
}

// AddEntry appends a name to the staff, executive or financier list.
func (r ReferenceRepository) AddEntry(ctx context.Context, kind ReferenceKind, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	table, column, err := kindTarget(kind)
	if err != nil {
		return err
	}
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}

	var exists int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE `+column+` = ?`, name,
	).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return domain.ConflictError{Resource: string(kind), Msg: name + " already in list"}
	}
	_, err = db.ExecContext(ctx, `INSERT INTO `+table+` (`+column+`) VALUES (?)`, name)
	return err
}

func kindTarget(kind ReferenceKind) (table, column string, err error) {
	switch kind {
	case KindStaff:
		return intdb.TableSalesStaff, "executive_name", nil
	case KindExecutives:
		return intdb.TableFinanceExecutives, "finance_executive", nil
	case KindFinanciers:
		return intdb.TableFinanciers, "finance_company", nil
	default:
		return "", "", domain.ValidationError{Field: "kind", Msg: "unknown list " + string(kind)}
	}
}
