package repositories

import (
	"context"
	"fmt"

	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads reference tables from the sheets of an .xlsx file,
// one sheet per table, first row as header. It is read-only.
type WorkbookSource struct {
	Path string
	// Open overrides how the workbook is opened (tests use in-memory files).
	Open func() (*excelize.File, error)
}

func (w WorkbookSource) open() (*excelize.File, error) {
	if w.Open != nil {
		return w.Open()
	}
	return excelize.OpenFile(w.Path)
}

// Load returns every reference sheet. A missing sheet fails the whole load.
func (w WorkbookSource) Load(ctx context.Context) (map[string]models.Table, error) {
	f, err := w.open()
	if err != nil {
		return nil, domain.ReferenceDataError{Msg: fmt.Sprintf("open workbook %s", w.Path), Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := map[string]bool{}
	for _, s := range f.GetSheetList() {
		sheets[s] = true
	}

	out := make(map[string]models.Table, len(models.ReferenceTables))
	for _, name := range models.ReferenceTables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !sheets[name] {
			return nil, domain.ReferenceDataError{Table: name, Msg: "worksheet not found"}
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, domain.ReferenceDataError{Table: name, Err: err}
		}
		if len(rows) < 2 {
			out[name] = models.Table{}
			continue
		}
		out[name] = models.Table{Header: rows[0], Rows: rows[1:]}
	}
	return out, nil
}
