package main

import (
	"log"
	"strings"

	"forecast-backend/internal/admin"
	"forecast-backend/internal/auth"
	"forecast-backend/internal/catalog"
	"forecast-backend/internal/config"
	"forecast-backend/internal/dashboard"
	"forecast-backend/internal/database"
	"forecast-backend/internal/exporter"
	"forecast-backend/internal/forecasts"
	"forecast-backend/internal/importer"
	"forecast-backend/internal/models"
	"forecast-backend/internal/queue"
	"forecast-backend/internal/sales"
	"forecast-backend/internal/stores"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	if err := admin.EnsureAdmin(cfg); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	var importQueue *queue.Client
	if cfg.AMQPURL != "" {
		var err error
		importQueue, err = queue.Dial(cfg.AMQPURL, cfg.ImportQueue)
		if err != nil {
			log.Fatalf("import queue: %v", err)
		}
		defer importQueue.Close()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Reference data
	protected.Get("/categories", catalog.ListCategoriesHandler())
	protected.Get("/categories/:sku", catalog.GetCategoryHandler())
	protected.Get("/stores", stores.ListStoresHandler())
	protected.Get("/stores/:id", stores.GetStoreHandler())

	// Sales facts, grouped per SKU
	protected.Get("/sales", sales.ListSalesHandler())
	protected.Get("/sales/one", sales.RetrieveSalesHandler())

	// Forecasts
	protected.Get("/forecasts", forecasts.ListForecastsHandler())
	protected.Post("/forecasts", forecasts.BatchCreateHandler())

	// Dashboard
	protected.Get("/dashboard/sales-summary", dashboard.SalesSummaryHandler())

	// Admin: bulk import/export
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/import/:kind", importer.UploadHandler(cfg, importQueue))
	adminRoutes.Get("/import-jobs", importer.ListJobsHandler())
	adminRoutes.Get("/export/forecasts", exporter.ForecastsXLSXHandler())
	adminRoutes.Get("/export/sales", exporter.SalesCSVHandler())

	log.Println("server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
