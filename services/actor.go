package services

import (
	"context"
	"errors"

	"salonbook-backend/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the tenant and user a service call runs on behalf of.
type Actor struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// tenant restricts a query to rows owned by the actor's account.
func tenant(db *gorm.DB, actor Actor) *gorm.DB {
	return db.Where("account_id = ?", actor.AccountID)
}

// findOwned loads one account-scoped row by id, mapping a miss to NotFound.
func findOwned(ctx context.Context, db *gorm.DB, actor Actor, dest interface{}, id uuid.UUID, resource string) error {
	err := tenant(db.WithContext(ctx), actor).First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource)
	}
	return err
}
