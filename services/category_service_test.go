package services

import (
	"context"
	"errors"
	"testing"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNormalizeLabel(t *testing.T) {
	tests := map[string]string{
		"booking":        "Booking",
		"  Booking  ":    "Booking",
		"WALK IN":        "Walk In",
		"senior stylist": "Senior Stylist",
		"   ":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLabel(in), "label %q", in)
	}
}

func TestCategoryResolve_SameNormalizedLabelReturnsSameCategory(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	svc := NewCategoryService(db)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, actor, "booking", models.CategoryLeadSource)
	require.NoError(t, err)
	second, err := svc.Resolve(ctx, actor, " Booking ", models.CategoryLeadSource)
	require.NoError(t, err)
	third, err := svc.Resolve(ctx, actor, "BOOKING", models.CategoryLeadSource)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ID, third.ID)
	assert.Equal(t, "Booking", first.Name)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCategoryResolve_KindAndTenantAreSeparateKeys(t *testing.T) {
	db := setupSQLiteTestDB(t)
	acme := createTenant(t, db, "Acme")
	other := createTenant(t, db, "Other")
	svc := NewCategoryService(db)
	ctx := context.Background()

	asSource, err := svc.Resolve(ctx, acme, "Instagram", models.CategoryLeadSource)
	require.NoError(t, err)
	asService, err := svc.Resolve(ctx, acme, "Instagram", models.CategoryService)
	require.NoError(t, err)
	otherTenant, err := svc.Resolve(ctx, other, "Instagram", models.CategoryLeadSource)
	require.NoError(t, err)

	assert.NotEqual(t, asSource.ID, asService.ID)
	assert.NotEqual(t, asSource.ID, otherTenant.ID)
	assert.Equal(t, other.AccountID, otherTenant.AccountID)
}

func TestCategoryResolve_RejectsBadInput(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	svc := NewCategoryService(db)

	_, err := svc.Resolve(context.Background(), actor, "Stylist", models.CategoryType("planet"))
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_type")

	_, err = svc.Resolve(context.Background(), actor, "   ", models.CategoryEmployee)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestResolveSubCategory(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	svc := NewCategoryService(db)
	ctx := context.Background()

	hair, err := svc.Resolve(ctx, actor, "Hair", models.CategoryService)
	require.NoError(t, err)
	nails, err := svc.Resolve(ctx, actor, "Nails", models.CategoryService)
	require.NoError(t, err)

	cut, err := svc.ResolveSubCategory(ctx, actor, "cut", models.CategoryService, hair.ID)
	require.NoError(t, err)
	require.NotNil(t, cut.ParentID)
	assert.Equal(t, hair.ID, *cut.ParentID)

	again, err := svc.ResolveSubCategory(ctx, actor, "Cut", models.CategoryService, hair.ID)
	require.NoError(t, err)
	assert.Equal(t, cut.ID, again.ID)

	_, err = svc.ResolveSubCategory(ctx, actor, "Cut", models.CategoryService, nails.ID)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = svc.ResolveSubCategory(ctx, actor, "Cut", models.CategoryService, uuid.New())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetOrCreate_RetriesLookupAfterLosingRace(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")

	winner := &models.Category{AccountID: actor.AccountID, Name: "Walk In", Type: models.CategoryLeadSource}
	require.NoError(t, db.Create(winner).Error)

	// The first lookup misses, as it would if the winner committed just after it.
	lookups := 0
	lookup := func(q *gorm.DB) *gorm.DB {
		lookups++
		if lookups == 1 {
			return q.Where("1 = 0")
		}
		return q.Where("account_id = ? AND name = ? AND category_type = ?", actor.AccountID, "Walk In", models.CategoryLeadSource)
	}
	build := func() *models.Category {
		return &models.Category{AccountID: actor.AccountID, Name: "Walk In", Type: models.CategoryLeadSource}
	}

	got, created, err := getOrCreate(db, lookup, build)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, 2, lookups)
}

func TestGetOrCreate_GivesUpWithConflict(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	require.NoError(t, db.Create(&models.Category{AccountID: actor.AccountID, Name: "Walk In", Type: models.CategoryLeadSource}).Error)

	never := func(q *gorm.DB) *gorm.DB { return q.Where("1 = 0") }
	build := func() *models.Category {
		return &models.Category{AccountID: actor.AccountID, Name: "Walk In", Type: models.CategoryLeadSource}
	}

	_, _, err := getOrCreate(db, never, build)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCategoryList(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	svc := NewCategoryService(db)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, actor, "Stylist", models.CategoryEmployee)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, actor, "Recliner", models.CategoryChair)
	require.NoError(t, err)

	all, err := svc.List(ctx, actor, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	chairs, err := svc.List(ctx, actor, models.CategoryChair)
	require.NoError(t, err)
	require.Len(t, chairs, 1)
	assert.Equal(t, "Recliner", chairs[0].Name)
}
