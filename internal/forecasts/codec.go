package forecasts

import (
	"fmt"
	"sort"
	"time"

	"forecast-backend/internal/models"
)

const dateLayout = "2006-01-02"

// Representation is the API shape of one forecast batch: the per-day values
// are denormalized into a date→units map.
type Representation struct {
	Store        string          `json:"store"`
	SKU          string          `json:"sku"`
	ForecastDate string          `json:"forecast_date"`
	Forecast     map[string]uint `json:"forecast"`
}

// Payload is one forecast submission in a batch-create request.
type Payload struct {
	Store        string          `json:"store"`
	SKU          string          `json:"sku"`
	ForecastDate string          `json:"forecast_date"`
	Forecast     map[string]uint `json:"forecast"`
}

// Encode builds the outward representation from a persisted batch and its day
// rows. Duplicate dates cannot occur under the (store, sku, forecast_date)
// uniqueness invariant, so the map holds one entry per row.
func Encode(f *models.Forecast, days []models.DayForecast) Representation {
	forecast := make(map[string]uint, len(days))
	for _, d := range days {
		forecast[d.Date.Format(dateLayout)] = d.Units
	}
	return Representation{
		Store:        f.StoreID,
		SKU:          f.SKUID,
		ForecastDate: f.ForecastDate.Format(dateLayout),
		Forecast:     forecast,
	}
}

// Decode validates a payload and converts its forecast map into day rows
// ready for bulk creation. JSON map iteration order is unspecified, so rows
// are sorted by date to keep persistence deterministic; only the date value
// identifies a row.
func Decode(p Payload) (models.Forecast, []models.DayForecast, error) {
	if p.Store == "" {
		return models.Forecast{}, nil, fmt.Errorf("store is required")
	}
	if p.SKU == "" {
		return models.Forecast{}, nil, fmt.Errorf("sku is required")
	}
	forecastDate, err := time.Parse(dateLayout, p.ForecastDate)
	if err != nil {
		return models.Forecast{}, nil, fmt.Errorf("forecast_date must be YYYY-MM-DD")
	}
	if len(p.Forecast) == 0 {
		return models.Forecast{}, nil, fmt.Errorf("forecast must contain at least one day")
	}

	days := make([]models.DayForecast, 0, len(p.Forecast))
	for key, units := range p.Forecast {
		date, err := time.Parse(dateLayout, key)
		if err != nil {
			return models.Forecast{}, nil, fmt.Errorf("forecast key %q must be YYYY-MM-DD", key)
		}
		days = append(days, models.DayForecast{Date: date, Units: units})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	parent := models.Forecast{
		StoreID:      p.Store,
		SKUID:        p.SKU,
		ForecastDate: forecastDate,
	}
	return parent, days, nil
}
