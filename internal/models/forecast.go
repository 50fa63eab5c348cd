package models

import "time"

// Forecast is one forecasting run for a (store, sku) pair computed on
// ForecastDate. Day values live in DayForecast and are written in bulk
// together with the parent.
type Forecast struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	StoreID      string    `gorm:"size:64;not null;uniqueIndex:uniq_forecast_store_sku_date" json:"store"`
	Store        Store     `gorm:"foreignKey:StoreID;references:Store;constraint:OnDelete:CASCADE" json:"-"`
	SKUID        string    `gorm:"size:64;not null;uniqueIndex:uniq_forecast_store_sku_date;column:sku_id" json:"sku"`
	SKU          Category  `gorm:"foreignKey:SKUID;references:SKU;constraint:OnDelete:CASCADE" json:"-"`
	ForecastDate time.Time `gorm:"type:date;not null;uniqueIndex:uniq_forecast_store_sku_date" json:"-"`

	Days []DayForecast `gorm:"foreignKey:ForecastID;constraint:OnDelete:CASCADE" json:"-"`
}

// DayForecast is a single predicted day of demand inside a Forecast batch.
// Immutable once created, removed only by cascade with the parent.
type DayForecast struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ForecastID uint      `gorm:"index;not null" json:"-"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`
	Units      uint      `gorm:"not null" json:"units"`
}
