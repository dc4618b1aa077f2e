package services

import (
	"context"
	"log/slog"
	"strings"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// NormalizeLabel is the canonical stored form of a category name.
func NormalizeLabel(label string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(label))
}

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// WithTx binds the resolver to an open transaction.
func (s *CategoryService) WithTx(tx *gorm.DB) *CategoryService {
	return &CategoryService{db: tx}
}

// Resolve returns the account's category for label and kind, creating it on
// first use. Labels that differ only in case or surrounding whitespace
// resolve to the same row.
func (s *CategoryService) Resolve(ctx context.Context, actor Actor, label string, kind models.CategoryType) (*models.Category, error) {
	return s.resolve(ctx, actor, label, kind, nil)
}

// ResolveSubCategory resolves label as a child of parentID. A label already
// used under another parent is rejected.
func (s *CategoryService) ResolveSubCategory(ctx context.Context, actor Actor, label string, kind models.CategoryType, parentID uuid.UUID) (*models.Category, error) {
	var parent models.Category
	if err := findOwned(ctx, s.db, actor, &parent, parentID, "category"); err != nil {
		return nil, err
	}
	if parent.Type != kind {
		return nil, apperrors.Validation("sub_category", "parent category is of a different type")
	}
	category, err := s.resolve(ctx, actor, label, kind, &parentID)
	if err != nil {
		return nil, err
	}
	if category.ParentID == nil || *category.ParentID != parentID {
		return nil, apperrors.Validation("sub_category", "does not belong to the selected category")
	}
	return category, nil
}

func (s *CategoryService) resolve(ctx context.Context, actor Actor, label string, kind models.CategoryType, parentID *uuid.UUID) (*models.Category, error) {
	if !kind.Valid() {
		return nil, apperrors.Validation("category_type", "unrecognized category type")
	}
	name := NormalizeLabel(label)
	if name == "" {
		return nil, apperrors.Validation("name", "must not be empty")
	}

	category, created, err := getOrCreate(s.db.WithContext(ctx),
		func(db *gorm.DB) *gorm.DB {
			return db.Where("account_id = ? AND name = ? AND category_type = ?", actor.AccountID, name, kind)
		},
		func() *models.Category {
			return &models.Category{AccountID: actor.AccountID, Name: name, Type: kind, ParentID: parentID}
		},
	)
	if err != nil {
		return nil, err
	}
	if created {
		utils.LoggerFromContext(ctx).Info("Category created",
			slog.String("category_id", category.ID.String()),
			slog.String("name", name),
			slog.String("type", string(kind)),
		)
	}
	return category, nil
}

// List returns the account's categories, optionally filtered by kind.
func (s *CategoryService) List(ctx context.Context, actor Actor, kind models.CategoryType) ([]models.Category, error) {
	q := tenant(s.db.WithContext(ctx), actor).Order("category_type, name")
	if kind != "" {
		if !kind.Valid() {
			return nil, apperrors.Validation("category_type", "unrecognized category type")
		}
		q = q.Where("category_type = ?", kind)
	}
	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// resolveOptional resolves a label when one was given and returns its id.
func (s *CategoryService) resolveOptional(ctx context.Context, actor Actor, label string, kind models.CategoryType) (*uuid.UUID, error) {
	if strings.TrimSpace(label) == "" {
		return nil, nil
	}
	category, err := s.Resolve(ctx, actor, label, kind)
	if err != nil {
		return nil, err
	}
	return &category.ID, nil
}
