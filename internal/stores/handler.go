package stores

import (
	"forecast-backend/internal/auth"
	"forecast-backend/internal/database"
	"forecast-backend/internal/httpx"
	"forecast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/stores
// Every column filters by exact value; `search` matches across city, division
// and the numeric type columns. Unmatched filters yield an empty list, 200.
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Store{})

		for param, column := range map[string]string{
			"store":       "store",
			"city":        "city",
			"division":    "division",
			"type_format": "type_format",
			"loc":         "loc",
			"size":        "size",
		} {
			if v := c.Query(param); v != "" {
				q = q.Where(column+" = ?", v)
			}
		}
		if v := c.Query("is_active"); v != "" {
			q = q.Where("is_active = ?", v == "true" || v == "1")
		}
		if s := c.Query("search"); s != "" {
			q = q.Where(
				database.DB.Where("city ILIKE ?", "%"+s+"%").
					Or("division ILIKE ?", "%"+s+"%").
					Or("type_format::text = ?", s).
					Or("loc::text = ?", s),
			)
		}

		var result []models.Store
		if err := q.Order("store").Find(&result).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load stores")
		}

		return httpx.Data(c, result)
	}
}

// GET /api/stores/:id
func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var store models.Store
		if err := database.DB.First(&store, "store = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "store not found")
		}

		// Staff may only open stores they are assigned to.
		if role, ok := c.Locals(auth.CtxUserRoleKey).(models.UserRole); ok && role == models.RoleStaff {
			userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
			var count int64
			database.DB.Table("user_stores").
				Where("user_id = ? AND store_store = ?", userID, store.Store).
				Count(&count)
			if count == 0 {
				return fiber.NewError(fiber.StatusForbidden, "no access to this store")
			}
		}

		return httpx.Data(c, store)
	}
}
