package catalog

import (
	"forecast-backend/internal/database"
	"forecast-backend/internal/httpx"
	"forecast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/categories
// sku/group/category/subcategory filter by substring, uom by exact value.
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Category{})

		for param, column := range map[string]string{
			"sku":         "sku",
			"group":       "\"group\"",
			"category":    "category",
			"subcategory": "subcategory",
		} {
			if v := c.Query(param); v != "" {
				q = q.Where(column+" ILIKE ?", "%"+v+"%")
			}
		}
		if uom := c.Query("uom"); uom != "" {
			q = q.Where("uom = ?", uom)
		}

		var categories []models.Category
		if err := q.Order("sku").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load categories")
		}

		return httpx.Data(c, categories)
	}
}

// GET /api/categories/:sku
func GetCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var category models.Category
		if err := database.DB.First(&category, "sku = ?", c.Params("sku")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return httpx.Data(c, category)
	}
}
