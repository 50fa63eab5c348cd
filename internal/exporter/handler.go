// Package exporter writes forecasts and sales back out in the same flat
// column format the import side accepts.
package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"forecast-backend/internal/database"
	"forecast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GET /api/admin/export/forecasts?store=&sku=
// XLSX of day forecasts flattened to one row per predicted day:
// st_id, pr_sku_id, forecast_date, date, units.
func ForecastsXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Forecast{}).
			Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("date") }).
			Order("store_id, sku_id, forecast_date")
		if store := c.Query("store"); store != "" {
			q = q.Where("store_id = ?", store)
		}
		if sku := c.Query("sku"); sku != "" {
			q = q.Where("sku_id = ?", sku)
		}

		var batches []models.Forecast
		if err := q.Find(&batches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load forecasts")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		headers := []string{"st_id", "pr_sku_id", "forecast_date", "date", "units"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		rowNum := 2
		for _, batch := range batches {
			for _, day := range batch.Days {
				values := []any{
					batch.StoreID,
					batch.SKUID,
					batch.ForecastDate.Format("2006-01-02"),
					day.Date.Format("2006-01-02"),
					day.Units,
				}
				for col, v := range values {
					cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
					f.SetCellValue(sheet, cell, v)
				}
				rowNum++
			}
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build workbook")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="forecasts.xlsx"`)
		return c.Send(buf.Bytes())
	}
}

// GET /api/admin/export/sales?store=&sku=
// CSV in the import column format, so an export can be re-imported as-is.
func SalesCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Sale{}).Order("store_id, sku_id, date")
		if store := c.Query("store"); store != "" {
			q = q.Where("store_id = ?", store)
		}
		if sku := c.Query("sku"); sku != "" {
			q = q.Where("sku_id = ?", sku)
		}

		var rows []models.Sale
		if err := q.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		w.Write([]string{"st_id", "pr_sku_id", "date", "pr_sales_type_id",
			"pr_sales_in_units", "pr_promo_sales_in_units", "pr_sales_in_rub", "pr_promo_sales_in_rub"})
		for _, s := range rows {
			salesType := "0"
			if s.SalesType {
				salesType = "1"
			}
			w.Write([]string{
				s.StoreID,
				s.SKUID,
				s.Date.Format("2006-01-02"),
				salesType,
				strconv.FormatUint(uint64(s.SalesUnits), 10),
				strconv.FormatUint(uint64(s.SalesUnitsPromo), 10),
				fmt.Sprintf("%.2f", s.SalesRub),
				fmt.Sprintf("%.2f", s.SalesRunPromo),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build CSV")
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales.csv"`)
		return c.Send(buf.Bytes())
	}
}
