package forecasts

import (
	"errors"
	"fmt"
	"time"

	"forecast-backend/internal/database"
	"forecast-backend/internal/httpx"
	"forecast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BatchCreateRequest struct {
	Data []Payload `json:"data"`
}

// GET /api/forecasts?store=&sku=&forecast_date_after=&forecast_date_before=
// Returns one representation per forecast batch, day values nested as a
// date→units map. Unknown store/sku yields an empty list, not an error.
func ListForecastsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := c.Query("store")
		sku := c.Query("sku")
		if store == "" || sku == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store and sku query parameters are required")
		}

		q := database.DB.
			Where("store_id = ? AND sku_id = ?", store, sku).
			Order("forecast_date")

		if after := c.Query("forecast_date_after"); after != "" {
			d, err := time.Parse("2006-01-02", after)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "forecast_date_after must be YYYY-MM-DD")
			}
			q = q.Where("forecast_date >= ?", d)
		}
		if before := c.Query("forecast_date_before"); before != "" {
			d, err := time.Parse("2006-01-02", before)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "forecast_date_before must be YYYY-MM-DD")
			}
			q = q.Where("forecast_date <= ?", d)
		}

		var batches []models.Forecast
		if err := q.Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("date")
		}).Find(&batches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load forecasts")
		}

		result := make([]Representation, 0, len(batches))
		for i := range batches {
			result = append(result, Encode(&batches[i], batches[i].Days))
		}

		return httpx.Data(c, result)
	}
}

// BatchCreate persists a list of forecast submissions in one transaction:
// any validation failure or uniqueness conflict rolls back every item, so a
// conflict never leaves earlier submissions behind. Errors carry the HTTP
// status as a *fiber.Error where the cause is the caller's.
func BatchCreate(db *gorm.DB, payloads []Payload) ([]Representation, error) {
	result := make([]Representation, 0, len(payloads))

	err := db.Transaction(func(tx *gorm.DB) error {
		for i, payload := range payloads {
			parent, days, err := Decode(payload)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("data[%d]: %v", i, err))
			}

			// Reject unknown references before touching the parent
			// table; filters return empty lists but writes must not
			// invent reference rows.
			var store models.Store
			if err := tx.First(&store, "store = ?", parent.StoreID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("data[%d]: unknown store %q", i, parent.StoreID))
			}
			var category models.Category
			if err := tx.First(&category, "sku = ?", parent.SKUID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("data[%d]: unknown sku %q", i, parent.SKUID))
			}

			if err := tx.Create(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fiber.NewError(fiber.StatusConflict,
						fmt.Sprintf("forecast for (%s, %s, %s) already exists",
							parent.StoreID, parent.SKUID, payload.ForecastDate))
				}
				return err
			}

			for j := range days {
				days[j].ForecastID = parent.ID
			}
			if err := tx.Create(&days).Error; err != nil {
				return err
			}

			result = append(result, Encode(&parent, days))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// POST /api/forecasts with body {"data": [...]}.
func BatchCreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BatchCreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if len(body.Data) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "data must contain at least one forecast")
		}

		result, err := BatchCreate(database.DB, body.Data)
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not create forecasts")
		}

		return httpx.Created(c, result)
	}
}
