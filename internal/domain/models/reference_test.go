package models

import (
	"testing"

	"dealerpos/internal/domain"
)

func sampleTables() map[string]Table {
	return map[string]Table{
		TableStaff:      {Header: []string{"executive_name"}, Rows: [][]string{{"Anand"}, {""}, {" Priya "}}},
		TableExecutives: {Header: []string{"finance_exectives"}, Rows: [][]string{{"Meena"}}},
		TableFinanciers: {
			Header: []string{"finance_company", "incentive_type", "incentive_value"},
			Rows: [][]string{
				{"Shriram", "percentage_dd", "0.02"},
				{"HDFC", "fixed_file", "1,500"},
				{"Bank", "", ""},
				{"Broken", "fixed_file", "lots"},
			},
		},
		TablePriceList: {
			Header: []string{"MODEL", "VARIANT", "ORP", "FINAL PRICE"},
			Rows: [][]string{
				{"Splendor ", "Disc", "4,50,000", "5,10,000"},
				{"Splendor", "Drum", "430000", "490000"},
				{"Activa", "Std", "n/a", "90000"},
				{"Activa", "DLX", "80000", "92000"},
			},
		},
		TableColors: {
			Header: []string{"MODEL", "Color_List"},
			Rows:    [][]string{{"Splendor", "Black. Red .Blue."}},
		},
		TableBOM: {
			Header: []string{"MODEL", "ACC1_NAME", "ACC1_PRICE", "ACC5_NAME", "ACC5_PRICE"},
			Rows:    [][]string{{"Splendor", "Floor Mat", "1,200", "Seat Cover", "4500"}},
		},
		TableFirms: {
			Header: []string{"FIRM_ID", "NAME", "ADDRESS", "GSTIN", "PHONE"},
			Rows: [][]string{
				{"1", "Sai Motors", "12, Main Road", "33AAAAA0000A1Z5", "0452-2222"},
				{"2", "Sai Accessories", "14, Main Road", "33BBBBB0000B1Z5", ""},
				{"3", "Ignored", "", "", ""},
			},
		},
	}
}

func TestBuildReferenceData(t *testing.T) {
	ref, err := BuildReferenceData(sampleTables())
	if err != nil {
		t.Fatalf("BuildReferenceData: %v", err)
	}

	if len(ref.Staff) != 2 || ref.Staff[1] != "Priya" {
		t.Fatalf("staff = %v", ref.Staff)
	}
	if len(ref.Financiers) != 4 {
		t.Fatalf("financiers = %v", ref.Financiers)
	}
	if len(ref.IncentiveRules) != 2 {
		t.Fatalf("rules = %v", ref.IncentiveRules)
	}
	if r := ref.IncentiveRules["HDFC"]; r.Kind != domain.IncentiveFixedFile || !r.Value.Equal(dec("1500")) {
		t.Fatalf("HDFC rule = %+v", r)
	}

	if len(ref.Vehicles) != 3 {
		t.Fatalf("vehicles = %+v", ref.Vehicles)
	}
	v, ok := ref.FindVehicle("Splendor", "Disc")
	if !ok || !v.Tax.Equal(dec("60000")) {
		t.Fatalf("Splendor Disc = %+v ok=%v", v, ok)
	}
	if got := ref.Models(); len(got) != 2 || got[0] != "Activa" {
		t.Fatalf("models = %v", got)
	}
	if got := ref.VariantsFor("Splendor"); len(got) != 2 {
		t.Fatalf("variants = %v", got)
	}

	if got := ref.ColorsFor("Splendor"); len(got) != 3 || got[1] != "Red" {
		t.Fatalf("colors = %v", got)
	}

	bom := ref.BOM["Splendor"]
	if bom.Slots[0].Name != "Floor Mat" || !bom.Slots[0].Price.Equal(dec("1200")) {
		t.Fatalf("bom slot 1 = %+v", bom.Slots[0])
	}
	if bom.Slots[4].Name != "Seat Cover" || !bom.Slots[1].Price.IsZero() {
		t.Fatalf("bom = %+v", bom)
	}

	if len(ref.Firms) != 2 || ref.Firms[FirmPrimary].Address != "12, Main Road" {
		t.Fatalf("firms = %+v", ref.Firms)
	}
}

func TestBuildReferenceDataMissingTable(t *testing.T) {
	tables := sampleTables()
	delete(tables, TableColors)
	_, err := BuildReferenceData(tables)
	if !domain.IsReferenceData(err) {
		t.Fatalf("expected reference data error, got %v", err)
	}
}

func TestBuildReferenceDataMissingColumns(t *testing.T) {
	tables := sampleTables()
	tables[TablePriceList] = Table{Header: []string{"MODEL", "ORP"}, Rows: [][]string{{"X", "1"}}}
	ref, err := BuildReferenceData(tables)
	if err != nil {
		t.Fatalf("BuildReferenceData: %v", err)
	}
	if !ref.Empty() {
		t.Fatalf("price list without FINAL PRICE should yield no vehicles")
	}
}
