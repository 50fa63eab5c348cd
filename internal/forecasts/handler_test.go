package forecasts

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func testApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unexpected server error"})
		},
	})
	app.Get("/api/forecasts", ListForecastsHandler())
	app.Post("/api/forecasts", BatchCreateHandler())
	return app
}

func TestListForecasts_RequiresStoreAndSKU(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/forecasts?store=S1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBatchCreate_RejectsEmptyData(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/api/forecasts", strings.NewReader(`{"data": []}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBatchCreate_RejectsMalformedBody(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/api/forecasts", strings.NewReader(`{"data": "nope"`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
