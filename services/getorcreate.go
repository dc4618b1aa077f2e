package services

import (
	"errors"

	"salonbook-backend/apperrors"

	"gorm.io/gorm"
)

const maxCreateAttempts = 3

// getOrCreate returns the row matched by lookup, inserting build() when there
// is none. The insert runs in its own savepoint so that losing a race on the
// unique index leaves the outer transaction usable; the loser re-reads the
// winner's row.
func getOrCreate[T any](db *gorm.DB, lookup func(*gorm.DB) *gorm.DB, build func() *T) (*T, bool, error) {
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		var existing T
		err := lookup(db).First(&existing).Error
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}

		row := build()
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(row).Error
		})
		if err == nil {
			return row, true, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
	}
	return nil, false, apperrors.ErrConflict
}
