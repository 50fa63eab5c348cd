package forecasts

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"forecast-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the same error
// translation the server runs with, so uniqueness conflicts surface as
// gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Store{}, &models.Category{},
		&models.Forecast{}, &models.DayForecast{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	seed := []any{
		&models.Store{Store: "S1", City: "City1", Division: "Div1", TypeFormat: 1, Loc: 1, Size: 1, IsActive: true},
		&models.Category{SKU: "SKU001", Group: "G1", Category: "C1", Subcategory: "SC1", UOM: models.UOMCount},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed test db: %v", err)
		}
	}
	return db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestBatchCreate_PersistsAndReadsBack(t *testing.T) {
	db := newTestDB(t)

	payload := Payload{
		Store:        "S1",
		SKU:          "SKU001",
		ForecastDate: "2024-01-01",
		Forecast:     map[string]uint{"2024-01-03": 7, "2024-01-02": 10},
	}

	result, err := BatchCreate(db, []Payload{payload})
	if err != nil {
		t.Fatalf("BatchCreate failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 representation, got %d", len(result))
	}

	var stored models.Forecast
	if err := db.Preload("Days").First(&stored).Error; err != nil {
		t.Fatalf("load stored batch: %v", err)
	}
	got := Encode(&stored, stored.Days)
	if got.Store != "S1" || got.SKU != "SKU001" || got.ForecastDate != "2024-01-01" {
		t.Errorf("unexpected keys: %+v", got)
	}
	if !reflect.DeepEqual(got.Forecast, payload.Forecast) {
		t.Errorf("day map changed through persistence: sent %v, read %v", payload.Forecast, got.Forecast)
	}
}

func TestBatchCreate_DuplicateBatchConflicts(t *testing.T) {
	db := newTestDB(t)

	first := Payload{
		Store:        "S1",
		SKU:          "SKU001",
		ForecastDate: "2024-01-01",
		Forecast:     map[string]uint{"2024-01-02": 10, "2024-01-03": 7},
	}
	if _, err := BatchCreate(db, []Payload{first}); err != nil {
		t.Fatalf("first BatchCreate failed: %v", err)
	}

	// Same (store, sku, forecast_date), different values: must conflict, and
	// the stored run must keep its original day rows.
	second := first
	second.Forecast = map[string]uint{"2024-01-02": 99}
	_, err := BatchCreate(db, []Payload{second})

	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
		t.Fatalf("expected 409 conflict, got %v", err)
	}
	if n := countRows(t, db, &models.Forecast{}); n != 1 {
		t.Errorf("expected 1 stored batch, got %d", n)
	}
	if n := countRows(t, db, &models.DayForecast{}); n != 2 {
		t.Errorf("expected the original 2 day rows, got %d", n)
	}
}

func TestBatchCreate_ConflictRollsBackWholeBatch(t *testing.T) {
	db := newTestDB(t)

	item := Payload{
		Store:        "S1",
		SKU:          "SKU001",
		ForecastDate: "2024-01-01",
		Forecast:     map[string]uint{"2024-01-02": 10},
	}

	// The second item collides with the first inside the same request; the
	// first item's rows must not survive the rollback.
	_, err := BatchCreate(db, []Payload{item, item})

	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
		t.Fatalf("expected 409 conflict, got %v", err)
	}
	if n := countRows(t, db, &models.Forecast{}); n != 0 {
		t.Errorf("expected no stored batches after rollback, got %d", n)
	}
	if n := countRows(t, db, &models.DayForecast{}); n != 0 {
		t.Errorf("expected no day rows after rollback, got %d", n)
	}
}

func TestBatchCreate_UnknownReferencesRejected(t *testing.T) {
	db := newTestDB(t)

	cases := []struct {
		name    string
		payload Payload
	}{
		{"unknown store", Payload{Store: "nope", SKU: "SKU001", ForecastDate: "2024-01-01", Forecast: map[string]uint{"2024-01-02": 1}}},
		{"unknown sku", Payload{Store: "S1", SKU: "nope", ForecastDate: "2024-01-01", Forecast: map[string]uint{"2024-01-02": 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BatchCreate(db, []Payload{tc.payload})
			var fe *fiber.Error
			if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
			if n := countRows(t, db, &models.Forecast{}); n != 0 {
				t.Errorf("expected no stored batches, got %d", n)
			}
		})
	}
}
