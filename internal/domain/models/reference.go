package models

import (
	"sort"
	"strconv"
	"strings"

	"dealerpos/internal/domain"

	"github.com/shopspring/decimal"
)

// Reference table names, shared by the MySQL and workbook sources.
const (
	TableStaff      = "Sales_Staff"
	TableExecutives = "Finance_Executives"
	TableFinanciers = "Financiers"
	TablePriceList  = "Price_List"
	TableColors     = "Colors"
	TableBOM        = "Accessory_BOM"
	TableFirms      = "Firm_Master"
)

// ReferenceTables lists every table a source must provide.
var ReferenceTables = []string{
	TableStaff, TableExecutives, TableFinanciers, TablePriceList,
	TableColors, TableBOM, TableFirms,
}

// Table is a raw tabular sheet: one header row and string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) column(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func (t Table) hasColumns(names ...string) bool {
	for _, n := range names {
		if t.column(n) < 0 {
			return false
		}
	}
	return true
}

// cell returns the sanitized value of row[col]; out of range yields "".
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return SanitizeCell(row[col])
}

// SanitizeCell trims a cell and strips thousands separators so that
// "1,25,000" parses as a number.
func SanitizeCell(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
}

// ReferenceData is everything the order form needs from configuration.
type ReferenceData struct {
	Staff          []string                        `json:"staff"`
	Executives     []string                        `json:"executives"`
	Financiers     []string                        `json:"financiers"`
	IncentiveRules map[string]domain.IncentiveRule `json:"incentive_rules"`
	Vehicles       []Vehicle                       `json:"vehicles"`
	Colors         map[string][]string             `json:"colors"`
	BOM            map[string]BOMRow               `json:"-"`
	Firms          map[int]Firm                    `json:"firms"`
}

// Empty reports whether no vehicles are available, which disables the form.
func (r ReferenceData) Empty() bool {
	return len(r.Vehicles) == 0
}

// Models returns the sorted set of vehicle models.
func (r ReferenceData) Models() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range r.Vehicles {
		m := strings.TrimSpace(v.Model)
		if _, ok := seen[m]; ok || m == "" {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// VariantsFor lists variants of model in price-list order.
func (r ReferenceData) VariantsFor(model string) []string {
	out := []string{}
	for _, v := range r.Vehicles {
		if strings.TrimSpace(v.Model) == model {
			out = append(out, v.Variant)
		}
	}
	return out
}

// FindVehicle looks up the price row for a model/variant pair.
func (r ReferenceData) FindVehicle(model, variant string) (Vehicle, bool) {
	for _, v := range r.Vehicles {
		if strings.TrimSpace(v.Model) == model && v.Variant == variant {
			return v, true
		}
	}
	return Vehicle{}, false
}

// ColorsFor returns the paint colors of model, or nil when unknown.
func (r ReferenceData) ColorsFor(model string) []string {
	return r.Colors[model]
}

// Contains reports whether list holds name.
func Contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// BuildReferenceData converts raw tables into typed reference data.
// Every listed table must be present; a table missing required columns
// contributes nothing.
func BuildReferenceData(tables map[string]Table) (ReferenceData, error) {
	for _, name := range ReferenceTables {
		if _, ok := tables[name]; !ok {
			return ReferenceData{}, domain.ReferenceDataError{Table: name, Msg: "not found"}
		}
	}

	out := ReferenceData{
		Staff:          nameColumn(tables[TableStaff], "executive_name"),
		Executives:     nameColumn(tables[TableExecutives], "finance_exectives"),
		Financiers:     nameColumn(tables[TableFinanciers], "finance_company"),
		IncentiveRules: incentiveRules(tables[TableFinanciers]),
		Vehicles:       vehicles(tables[TablePriceList]),
		Colors:         colors(tables[TableColors]),
		BOM:            bomRows(tables[TableBOM]),
		Firms:          firms(tables[TableFirms]),
	}
	return out, nil
}

func nameColumn(t Table, column string) []string {
	col := t.column(column)
	out := []string{}
	if col < 0 {
		return out
	}
	for _, row := range t.Rows {
		if v := strings.TrimSpace(safeCell(row, col)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// safeCell keeps commas; names may legitimately contain them.
func safeCell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func incentiveRules(t Table) map[string]domain.IncentiveRule {
	out := map[string]domain.IncentiveRule{}
	if !t.hasColumns("finance_company", "incentive_type", "incentive_value") {
		return out
	}
	nameCol := t.column("finance_company")
	kindCol := t.column("incentive_type")
	valueCol := t.column("incentive_value")
	for _, row := range t.Rows {
		name := strings.TrimSpace(safeCell(row, nameCol))
		kind := cell(row, kindCol)
		raw := cell(row, valueCol)
		if name == "" || kind == "" || raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		out[name] = domain.IncentiveRule{Kind: domain.IncentiveKind(kind), Value: value}
	}
	return out
}

func vehicles(t Table) []Vehicle {
	out := []Vehicle{}
	if !t.hasColumns("MODEL", "VARIANT", "ORP", "FINAL PRICE") {
		return out
	}
	modelCol, variantCol := t.column("MODEL"), t.column("VARIANT")
	orpCol, finalCol := t.column("ORP"), t.column("FINAL PRICE")
	for _, row := range t.Rows {
		orp, err := decimal.NewFromString(cell(row, orpCol))
		if err != nil {
			continue
		}
		final, err := decimal.NewFromString(cell(row, finalCol))
		if err != nil {
			continue
		}
		out = append(out, NewVehicle(
			strings.TrimSpace(safeCell(row, modelCol)),
			strings.TrimSpace(safeCell(row, variantCol)),
			orp, final,
		))
	}
	return out
}

func colors(t Table) map[string][]string {
	out := map[string][]string{}
	if !t.hasColumns("MODEL", "Color_List") {
		return out
	}
	modelCol, listCol := t.column("MODEL"), t.column("Color_List")
	for _, row := range t.Rows {
		model := strings.TrimSpace(safeCell(row, modelCol))
		if model == "" {
			continue
		}
		list := []string{}
		for _, c := range strings.Split(safeCell(row, listCol), ".") {
			if c = strings.TrimSpace(c); c != "" {
				list = append(list, c)
			}
		}
		out[model] = list
	}
	return out
}

func bomRows(t Table) map[string]BOMRow {
	out := map[string]BOMRow{}
	modelCol := t.column("MODEL")
	if modelCol < 0 {
		return out
	}
	for _, row := range t.Rows {
		model := strings.TrimSpace(safeCell(row, modelCol))
		if model == "" {
			continue
		}
		bom := BOMRow{Model: model}
		for i := range bom.Slots {
			n := strconv.Itoa(i + 1)
			name := strings.TrimSpace(safeCell(row, t.column("ACC"+n+"_NAME")))
			price, err := decimal.NewFromString(cell(row, t.column("ACC"+n+"_PRICE")))
			if err != nil {
				price = decimal.Zero
			}
			bom.Slots[i] = AccessorySlot{Name: name, Price: price}
		}
		out[model] = bom
	}
	return out
}

func firms(t Table) map[int]Firm {
	out := map[int]Firm{}
	idCol := t.column("FIRM_ID")
	if idCol < 0 {
		return out
	}
	for _, row := range t.Rows {
		id, err := strconv.Atoi(cell(row, idCol))
		if err != nil || (id != FirmPrimary && id != FirmSecondary) {
			continue
		}
		out[id] = Firm{
			ID:      id,
			Name:    strings.TrimSpace(safeCell(row, t.column("NAME"))),
			Address: strings.TrimSpace(safeCell(row, t.column("ADDRESS"))),
			GSTIN:   cell(row, t.column("GSTIN")),
			Phone:   cell(row, t.column("PHONE")),
		}
	}
	return out
}
