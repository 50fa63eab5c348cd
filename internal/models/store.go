package models

// Store is store reference data keyed by the hashed store id.
// Occasionally refreshed by import, never edited through the API.
type Store struct {
	Store      string `gorm:"primaryKey;size:64;column:store" json:"store"`
	City       string `gorm:"size:64;not null" json:"city"`
	Division   string `gorm:"size:64;not null" json:"division"`
	TypeFormat uint16 `gorm:"not null" json:"type_format"`
	Loc        uint16 `gorm:"not null" json:"loc"` // location / surroundings type
	Size       uint16 `gorm:"not null" json:"size"`
	IsActive   bool   `gorm:"not null" json:"is_active"`

	Users []User `gorm:"many2many:user_stores" json:"-"`
}
