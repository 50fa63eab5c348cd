package sales

import (
	"time"

	"forecast-backend/internal/database"
	"forecast-backend/internal/grouping"
	"forecast-backend/internal/httpx"
	"forecast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Fact is one day of sales inside a per-SKU group.
type Fact struct {
	Date            string  `json:"date"`
	SalesType       bool    `json:"sales_type"`
	SalesUnits      uint    `json:"sales_units"`
	SalesUnitsPromo uint    `json:"sales_units_promo"`
	SalesRub        float64 `json:"sales_rub"`
	SalesRunPromo   float64 `json:"sales_run_promo"`
}

func toFact(s models.Sale) Fact {
	return Fact{
		Date:            s.Date.Format("2006-01-02"),
		SalesType:       s.SalesType,
		SalesUnits:      s.SalesUnits,
		SalesUnitsPromo: s.SalesUnitsPromo,
		SalesRub:        s.SalesRub,
		SalesRunPromo:   s.SalesRunPromo,
	}
}

// parseDateRange reads date_after/date_before before any query is built, so
// malformed filters fail fast without touching the database.
func parseDateRange(c *fiber.Ctx) (after, before *time.Time, err error) {
	if v := c.Query("date_after"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "date_after must be YYYY-MM-DD")
		}
		after = &d
	}
	if v := c.Query("date_before"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "date_before must be YYYY-MM-DD")
		}
		before = &d
	}
	return after, before, nil
}

func applyDateRange(q *gorm.DB, after, before *time.Time) *gorm.DB {
	if after != nil {
		q = q.Where("date >= ?", *after)
	}
	if before != nil {
		q = q.Where("date <= ?", *before)
	}
	return q
}

// GET /api/sales?store=&sku=&date_after=&date_before=
// Flat per-day rows grouped into {store, sku, fact: [...]} per distinct SKU.
// A store with no recorded sales produces an empty list, 200.
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := c.Query("store")
		if store == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store query parameter is required")
		}
		after, before, err := parseDateRange(c)
		if err != nil {
			return err
		}

		q := database.DB.Where("store_id = ?", store)
		if sku := c.Query("sku"); sku != "" {
			q = q.Where("sku_id = ?", sku)
		}
		q = applyDateRange(q, after, before)

		var rows []models.Sale
		if err := q.Order("sku_id, date").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		grouped := grouping.BySKU(store, toRows(rows))
		return httpx.Data(c, grouped)
	}
}

// GET /api/sales/one?store=&sku=
// Single group for one (store, sku) pair; fact list is empty when the pair is
// unknown, matching the "not found filters return empty list" convention.
func RetrieveSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := c.Query("store")
		sku := c.Query("sku")
		if store == "" || sku == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store and sku query parameters are required")
		}
		after, before, err := parseDateRange(c)
		if err != nil {
			return err
		}

		q := applyDateRange(database.DB.Where("store_id = ? AND sku_id = ?", store, sku), after, before)

		var rows []models.Sale
		if err := q.Order("date").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		facts := make([]Fact, 0, len(rows))
		for _, r := range rows {
			facts = append(facts, toFact(r))
		}

		return httpx.Data(c, grouping.Group[Fact]{Store: store, SKU: sku, Fact: facts})
	}
}

func toRows(rows []models.Sale) []grouping.Row[Fact] {
	out := make([]grouping.Row[Fact], 0, len(rows))
	for _, r := range rows {
		out = append(out, grouping.Row[Fact]{SKU: r.SKUID, Fact: toFact(r)})
	}
	return out
}
