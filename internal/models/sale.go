package models

import "time"

// Sale is one day of sales facts for a (store, sku) pair.
// Rows are created by import only; the unique index keeps re-imports idempotent.
type Sale struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	StoreID         string    `gorm:"size:64;not null;uniqueIndex:uniq_sale_store_sku_date" json:"store"`
	Store           Store     `gorm:"foreignKey:StoreID;references:Store;constraint:OnDelete:CASCADE" json:"-"`
	SKUID           string    `gorm:"size:64;not null;uniqueIndex:uniq_sale_store_sku_date;column:sku_id" json:"sku"`
	SKU             Category  `gorm:"foreignKey:SKUID;references:SKU;constraint:OnDelete:CASCADE" json:"-"`
	Date            time.Time `gorm:"type:date;not null;uniqueIndex:uniq_sale_store_sku_date" json:"-"`
	SalesType       bool      `gorm:"not null" json:"sales_type"` // promo flag
	SalesUnits      uint      `gorm:"not null" json:"sales_units"`
	SalesUnitsPromo uint      `gorm:"not null" json:"sales_units_promo"`
	SalesRub        float64   `gorm:"not null" json:"sales_rub"`
	SalesRunPromo   float64   `gorm:"not null" json:"sales_run_promo"`
}
