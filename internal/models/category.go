package models

// UOM markers: weight-based goods vs. discrete count.
const (
	UOMCount  uint16 = 0
	UOMWeight uint16 = 1
)

// Category is product reference data keyed by the hashed SKU.
type Category struct {
	SKU         string `gorm:"primaryKey;size:64;column:sku" json:"sku"`
	Group       string `gorm:"size:64;not null" json:"group"`
	Category    string `gorm:"size:64;not null" json:"category"`
	Subcategory string `gorm:"size:64;not null" json:"subcategory"`
	UOM         uint16 `gorm:"not null;column:uom" json:"uom"` // weight vs. count marker
}
