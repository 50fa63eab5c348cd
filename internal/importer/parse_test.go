package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const categoriesCSV = `pr_sku_id,pr_group_id,pr_cat_id,pr_subcat_id,pr_uom_id
SKU001,G1,C1,SC1,1
SKU002,G1,C2,SC2,17
`

const storesCSV = `st_id,st_city_id,st_division_code,st_type_format_id,st_type_loc_id,st_type_size_id,st_is_active
S1,City1,Div1,1,2,3,1
S2,City2,Div1,4,5,6,0
`

const salesCSV = `st_id,pr_sku_id,date,pr_sales_type_id,pr_sales_in_units,pr_promo_sales_in_units,pr_sales_in_rub,pr_promo_sales_in_rub
S1,SKU001,2024-01-01,1,10,5,100.50,42.00
S1,SKU001,2024-01-02,0,3,0,31.10,0
`

func TestParseCategories(t *testing.T) {
	rows, err := ReadTable(strings.NewReader(categoriesCSV), "pr_df.csv")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	records, rowErrs, err := ParseCategories(rows)
	if err != nil {
		t.Fatalf("ParseCategories failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(records))
	}
	if records[0].SKU != "SKU001" || records[0].Group != "G1" || records[0].UOM != 1 {
		t.Errorf("unexpected first category: %+v", records[0])
	}
	if records[1].UOM != 17 {
		t.Errorf("expected uom 17, got %d", records[1].UOM)
	}
}

func TestParseCategories_MissingColumn(t *testing.T) {
	rows := [][]string{{"pr_sku_id", "pr_group_id"}}
	if _, _, err := ParseCategories(rows); err == nil {
		t.Error("expected error for missing columns, got nil")
	}
}

func TestParseStores(t *testing.T) {
	rows, err := ReadTable(strings.NewReader(storesCSV), "st_df.csv")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	records, rowErrs, err := ParseStores(rows)
	if err != nil {
		t.Fatalf("ParseStores failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(records))
	}
	if !records[0].IsActive || records[1].IsActive {
		t.Errorf("is_active flags wrong: %+v", records)
	}
	if records[1].TypeFormat != 4 || records[1].Loc != 5 || records[1].Size != 6 {
		t.Errorf("unexpected second store: %+v", records[1])
	}
}

func TestParseSales(t *testing.T) {
	rows, err := ReadTable(strings.NewReader(salesCSV), "sales_df.csv")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	records, rowErrs, err := ParseSales(rows)
	if err != nil {
		t.Fatalf("ParseSales failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(records))
	}
	first := records[0]
	if first.StoreID != "S1" || first.SKUID != "SKU001" {
		t.Errorf("unexpected keys: %+v", first)
	}
	if !first.SalesType || first.SalesUnits != 10 || first.SalesUnitsPromo != 5 {
		t.Errorf("unexpected units: %+v", first)
	}
	if first.SalesRub != 100.50 || first.SalesRunPromo != 42.00 {
		t.Errorf("unexpected revenue: %+v", first)
	}
	if first.Date.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("unexpected date: %v", first.Date)
	}
}

func TestParseSales_BadRowsCollected(t *testing.T) {
	csv := `st_id,pr_sku_id,date,pr_sales_type_id,pr_sales_in_units,pr_promo_sales_in_units,pr_sales_in_rub,pr_promo_sales_in_rub
S1,SKU001,not-a-date,1,10,5,100.50,42.00
S1,,2024-01-02,0,3,0,31.10,0
S1,SKU001,2024-01-03,0,3,0,31.10,0
`
	rows, err := ReadTable(strings.NewReader(csv), "sales.csv")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	records, rowErrs, err := ParseSales(rows)
	if err != nil {
		t.Fatalf("ParseSales failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 good row, got %d", len(records))
	}
	if len(rowErrs) != 2 {
		t.Fatalf("expected 2 row errors, got %d: %v", len(rowErrs), rowErrs)
	}
	if rowErrs[0].Row != 2 || rowErrs[1].Row != 3 {
		t.Errorf("row numbers wrong: %v", rowErrs)
	}
}

// Float-formatted integers ("12.0") come out of pandas exports; the parsers
// must accept them.
func TestParseCategories_FloatFormattedIntegers(t *testing.T) {
	csv := "pr_sku_id,pr_group_id,pr_cat_id,pr_subcat_id,pr_uom_id\nSKU001,G1,C1,SC1,1.0\n"
	rows, _ := ReadTable(strings.NewReader(csv), "pr_df.csv")

	records, rowErrs, err := ParseCategories(rows)
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("parse failed: %v %v", err, rowErrs)
	}
	if records[0].UOM != 1 {
		t.Errorf("expected uom 1, got %d", records[0].UOM)
	}
}

// "12.0" is a float frame artifact; "12.9" is corrupt data and must not be
// silently truncated to 12.
func TestParseSales_RejectsFractionalUnits(t *testing.T) {
	csv := `st_id,pr_sku_id,date,pr_sales_type_id,pr_sales_in_units,pr_promo_sales_in_units,pr_sales_in_rub,pr_promo_sales_in_rub
S1,SKU001,2024-01-01,1,12.9,5,100.50,42.00
`
	rows, err := ReadTable(strings.NewReader(csv), "sales.csv")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	records, rowErrs, err := ParseSales(rows)
	if err != nil {
		t.Fatalf("ParseSales failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
	if len(rowErrs) != 1 || rowErrs[0].Row != 2 {
		t.Fatalf("expected one error on row 2, got %v", rowErrs)
	}
	if !strings.Contains(rowErrs[0].Err.Error(), "pr_sales_in_units") {
		t.Errorf("error should name the column: %v", rowErrs[0].Err)
	}
}

func TestReadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]any{
		{"pr_sku_id", "pr_group_id", "pr_cat_id", "pr_subcat_id", "pr_uom_id"},
		{"SKU001", "G1", "C1", "SC1", 1},
	}
	for r, row := range data {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadTable(&buf, "pr_df.xlsx")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	records, rowErrs, err := ParseCategories(rows)
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("parse failed: %v %v", err, rowErrs)
	}
	if len(records) != 1 || records[0].SKU != "SKU001" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestReadTable_InvalidXLSX(t *testing.T) {
	if _, err := ReadTable(strings.NewReader("definitely not a workbook"), "bad.xlsx"); err == nil {
		t.Error("expected error for invalid xlsx, got nil")
	}
}
