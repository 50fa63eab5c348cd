package dashboard

import (
	"strconv"

	"forecast-backend/internal/database"
	"forecast-backend/internal/httpx"
	"forecast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MonthlySalesItem struct {
	Month           int     `json:"month"`
	SalesUnits      uint    `json:"sales_units"`
	SalesUnitsPromo uint    `json:"sales_units_promo"`
	SalesRub        float64 `json:"sales_rub"`
	SalesRunPromo   float64 `json:"sales_run_promo"`
}

type MonthlySalesResponse struct {
	Store string             `json:"store"`
	Year  int                `json:"year"`
	Items []MonthlySalesItem `json:"items"`
}

// GET /api/dashboard/sales-summary?store=&year=
// Per-month totals of units and revenue for one store. Months without sales
// are simply absent from items.
func SalesSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := c.Query("store")
		if store == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store query parameter is required")
		}
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil || year < 2000 || year > 2200 {
			return fiber.NewError(fiber.StatusBadRequest, "year must be a four-digit year")
		}

		var items []MonthlySalesItem
		err = database.DB.Model(&models.Sale{}).
			Select("EXTRACT(MONTH FROM date)::int AS month, "+
				"SUM(sales_units) AS sales_units, "+
				"SUM(sales_units_promo) AS sales_units_promo, "+
				"SUM(sales_rub) AS sales_rub, "+
				"SUM(sales_run_promo) AS sales_run_promo").
			Where("store_id = ? AND EXTRACT(YEAR FROM date) = ?", store, year).
			Group("month").
			Order("month").
			Scan(&items).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build summary")
		}
		if items == nil {
			items = []MonthlySalesItem{}
		}

		return httpx.Data(c, MonthlySalesResponse{Store: store, Year: year, Items: items})
	}
}
