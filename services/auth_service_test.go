package services

import (
	"context"
	"testing"
	"time"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthRegisterAndLogin(t *testing.T) {
	db := setupSQLiteTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Email:     " Owner@Example.com ",
		Phone:     "+44 7700 900123",
		Name:      "Owner",
		Password:  "s3cret",
		SalonName: "Acme Hair",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", registered.User.Email)
	assert.Equal(t, models.RoleOwner, registered.User.Role)

	var salons []models.Salon
	require.NoError(t, db.Where("account_id = ?", registered.User.AccountID).Find(&salons).Error)
	require.Len(t, salons, 1)
	assert.Equal(t, "Acme Hair", salons[0].Name)

	id, err := utils.ParseToken(registered.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, id.UserID)
	assert.Equal(t, registered.User.AccountID, id.AccountID)

	byPhone, err := svc.Login(ctx, "+447700900123", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, byPhone.User.ID)

	_, err = svc.Login(ctx, "owner@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := svc.Me(ctx, ActorFor(id))
	require.NoError(t, err)
	assert.NotNil(t, me.LastLogin)
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	db := setupSQLiteTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)
	ctx := context.Background()

	in := RegisterInput{Email: "owner@example.com", Name: "Owner", Password: "pw", SalonName: "Acme"}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	var accounts int64
	require.NoError(t, db.Model(&models.Account{}).Count(&accounts).Error)
	assert.EqualValues(t, 1, accounts, "failed registration leaves no account behind")
}
