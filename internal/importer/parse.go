// Package importer loads reference and sales data from the CSV/XLSX files the
// upstream pipeline exports. Column names follow that export format
// (pr_sku_id, st_id, ...), not the API field names.
package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"forecast-backend/internal/models"
)

type header map[string]int

func indexHeader(row []string, required ...string) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(strings.Trim(name, "\r"))] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return h, nil
}

func (h header) cell(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) uintCell(row []string, name string) (uint, error) {
	v := h.cell(row, name)
	// The export writes integer columns as "12.0" when they pass through a
	// float frame; accept that form.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("column %q: %q is not a non-negative whole number", name, v)
	}
	return uint(f), nil
}

func (h header) floatCell(row []string, name string) (float64, error) {
	v := h.cell(row, name)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %q is not a number", name, v)
	}
	return f, nil
}

func (h header) boolCell(row []string, name string) (bool, error) {
	switch h.cell(row, name) {
	case "1", "true", "True":
		return true, nil
	case "0", "false", "False", "":
		return false, nil
	default:
		return false, fmt.Errorf("column %q: expected a 0/1 flag", name)
	}
}

// RowError ties a parse failure to its 1-based row number in the source file.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }

func ParseCategories(rows [][]string) ([]models.Category, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}
	h, err := indexHeader(rows[0], "pr_sku_id", "pr_group_id", "pr_cat_id", "pr_subcat_id", "pr_uom_id")
	if err != nil {
		return nil, nil, err
	}

	var result []models.Category
	var rowErrs []RowError
	for i, row := range rows[1:] {
		sku := h.cell(row, "pr_sku_id")
		if sku == "" {
			rowErrs = append(rowErrs, RowError{i + 2, fmt.Errorf("empty pr_sku_id")})
			continue
		}
		uom, err := h.uintCell(row, "pr_uom_id")
		if err != nil {
			rowErrs = append(rowErrs, RowError{i + 2, err})
			continue
		}
		result = append(result, models.Category{
			SKU:         sku,
			Group:       h.cell(row, "pr_group_id"),
			Category:    h.cell(row, "pr_cat_id"),
			Subcategory: h.cell(row, "pr_subcat_id"),
			UOM:         uint16(uom),
		})
	}
	return result, rowErrs, nil
}

func ParseStores(rows [][]string) ([]models.Store, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}
	h, err := indexHeader(rows[0], "st_id", "st_city_id", "st_division_code",
		"st_type_format_id", "st_type_loc_id", "st_type_size_id", "st_is_active")
	if err != nil {
		return nil, nil, err
	}

	var result []models.Store
	var rowErrs []RowError
	for i, row := range rows[1:] {
		id := h.cell(row, "st_id")
		if id == "" {
			rowErrs = append(rowErrs, RowError{i + 2, fmt.Errorf("empty st_id")})
			continue
		}
		typeFormat, err1 := h.uintCell(row, "st_type_format_id")
		loc, err2 := h.uintCell(row, "st_type_loc_id")
		size, err3 := h.uintCell(row, "st_type_size_id")
		active, err4 := h.boolCell(row, "st_is_active")
		for _, err := range []error{err1, err2, err3, err4} {
			if err != nil {
				rowErrs = append(rowErrs, RowError{i + 2, err})
				break
			}
		}
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		result = append(result, models.Store{
			Store:      id,
			City:       h.cell(row, "st_city_id"),
			Division:   h.cell(row, "st_division_code"),
			TypeFormat: uint16(typeFormat),
			Loc:        uint16(loc),
			Size:       uint16(size),
			IsActive:   active,
		})
	}
	return result, rowErrs, nil
}

func ParseSales(rows [][]string) ([]models.Sale, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}
	h, err := indexHeader(rows[0], "st_id", "pr_sku_id", "date", "pr_sales_type_id",
		"pr_sales_in_units", "pr_promo_sales_in_units", "pr_sales_in_rub", "pr_promo_sales_in_rub")
	if err != nil {
		return nil, nil, err
	}

	var result []models.Sale
	var rowErrs []RowError
	for i, row := range rows[1:] {
		store := h.cell(row, "st_id")
		sku := h.cell(row, "pr_sku_id")
		if store == "" || sku == "" {
			rowErrs = append(rowErrs, RowError{i + 2, fmt.Errorf("empty st_id or pr_sku_id")})
			continue
		}
		date, err := time.Parse("2006-01-02", h.cell(row, "date"))
		if err != nil {
			rowErrs = append(rowErrs, RowError{i + 2, fmt.Errorf("column \"date\": must be YYYY-MM-DD")})
			continue
		}
		salesType, err1 := h.boolCell(row, "pr_sales_type_id")
		units, err2 := h.uintCell(row, "pr_sales_in_units")
		unitsPromo, err3 := h.uintCell(row, "pr_promo_sales_in_units")
		rub, err4 := h.floatCell(row, "pr_sales_in_rub")
		rubPromo, err5 := h.floatCell(row, "pr_promo_sales_in_rub")
		bad := false
		for _, err := range []error{err1, err2, err3, err4, err5} {
			if err != nil {
				rowErrs = append(rowErrs, RowError{i + 2, err})
				bad = true
				break
			}
		}
		if bad {
			continue
		}
		result = append(result, models.Sale{
			StoreID:         store,
			SKUID:           sku,
			Date:            date,
			SalesType:       salesType,
			SalesUnits:      units,
			SalesUnitsPromo: unitsPromo,
			SalesRub:        rub,
			SalesRunPromo:   rubPromo,
		})
	}
	return result, rowErrs, nil
}
