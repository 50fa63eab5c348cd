package importer

import (
	"fmt"
	"io"

	"forecast-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const createBatchSize = 500

// Result summarizes one import run. Skipped counts rows that already existed
// (natural-key conflict) plus rows rejected by the parser.
type Result struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Run parses the file and upserts it under get_or_create semantics: existing
// rows are never updated, only missing ones are inserted.
func Run(db *gorm.DB, kind models.ImportKind, r io.Reader, filename string) (Result, error) {
	rows, err := ReadTable(r, filename)
	if err != nil {
		return Result{}, err
	}

	switch kind {
	case models.ImportCategories:
		records, rowErrs, err := ParseCategories(rows)
		if err != nil {
			return Result{}, err
		}
		return insert(db, records, rowErrs, []clause.Column{{Name: "sku"}})
	case models.ImportStores:
		records, rowErrs, err := ParseStores(rows)
		if err != nil {
			return Result{}, err
		}
		return insert(db, records, rowErrs, []clause.Column{{Name: "store"}})
	case models.ImportSales:
		records, rowErrs, err := ParseSales(rows)
		if err != nil {
			return Result{}, err
		}
		return insert(db, records, rowErrs,
			[]clause.Column{{Name: "store_id"}, {Name: "sku_id"}, {Name: "date"}})
	default:
		return Result{}, fmt.Errorf("unknown import kind %q", kind)
	}
}

func insert[T any](db *gorm.DB, records []T, rowErrs []RowError, key []clause.Column) (Result, error) {
	res := Result{Skipped: len(rowErrs), Errors: rowErrs}
	if len(records) == 0 {
		return res, nil
	}

	tx := db.Clauses(clause.OnConflict{Columns: key, DoNothing: true}).
		CreateInBatches(records, createBatchSize)
	if tx.Error != nil {
		return Result{}, tx.Error
	}

	res.Imported = int(tx.RowsAffected)
	res.Skipped += len(records) - int(tx.RowsAffected)
	return res, nil
}
