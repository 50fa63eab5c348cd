package models

import "time"

type ImportKind string

const (
	ImportCategories ImportKind = "categories"
	ImportStores     ImportKind = "stores"
	ImportSales      ImportKind = "sales"
)

type ImportStatus string

const (
	ImportPending ImportStatus = "pending"
	ImportRunning ImportStatus = "running"
	ImportDone    ImportStatus = "done"
	ImportFailed  ImportStatus = "failed"
)

// ImportJob tracks one bulk import, whether it ran inline or through the
// worker queue. FilePath points at the stored upload for queued jobs.
type ImportJob struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	Kind      ImportKind   `gorm:"size:20;not null" json:"kind"`
	FileName  string       `gorm:"size:255;not null" json:"file_name"`
	FilePath  string       `gorm:"size:512" json:"-"`
	Status    ImportStatus `gorm:"size:20;not null;index" json:"status"`
	Imported  int          `gorm:"not null;default:0" json:"imported"`
	Skipped   int          `gorm:"not null;default:0" json:"skipped"`
	Error     string       `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
