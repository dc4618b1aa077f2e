package services

import (
	"context"
	"strings"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogInput describes a new service or product. Discount and Duration
// only apply to services.
type CatalogInput struct {
	SalonID            uuid.UUID
	Name               string
	Description        string
	Price              decimal.Decimal
	DiscountPercentage *decimal.Decimal
	Duration           int
	Category           string
	SubCategory        string
	Images             []ImageUpload
}

type CatalogPatch struct {
	Name               *string
	Description        *string
	Price              *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	ClearDiscount      bool
	Duration           *int
	Category           *string
	SubCategory        *string
	IsActive           *bool
	Images             []ImageUpload
}

type CatalogFilter struct {
	SalonID    *uuid.UUID
	ActiveOnly bool
}

// CatalogService manages the services and products a salon sells.
type CatalogService struct {
	db         *gorm.DB
	categories *CategoryService
	gallery    gallery
}

func NewCatalogService(db *gorm.DB, categories *CategoryService, images ImageStore) *CatalogService {
	return &CatalogService{db: db, categories: categories, gallery: gallery{store: images}}
}

func (s *CatalogService) CreateService(ctx context.Context, actor Actor, in CatalogInput) (*models.Service, error) {
	if err := validateCatalogInput(in, true); err != nil {
		return nil, err
	}
	service := &models.Service{
		AccountID:   actor.AccountID,
		SalonID:     in.SalonID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		IsActive:    true,
	}
	if in.DiscountPercentage != nil {
		service.DiscountPercentage = decimal.NewNullDecimal(*in.DiscountPercentage)
	}
	if err := s.create(ctx, actor, in, models.CategoryService, service, &service.CategoryID, &service.SubCategoryID); err != nil {
		return nil, err
	}
	return s.GetService(ctx, actor, service.ID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor Actor, in CatalogInput) (*models.Product, error) {
	if err := validateCatalogInput(in, false); err != nil {
		return nil, err
	}
	product := &models.Product{
		AccountID:   actor.AccountID,
		SalonID:     in.SalonID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		IsActive:    true,
	}
	if err := s.create(ctx, actor, in, models.CategoryProduct, product, &product.CategoryID, &product.SubCategoryID); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, actor, product.ID)
}

func (s *CatalogService) create(ctx context.Context, actor Actor, in CatalogInput, kind models.CategoryType, item models.ImageOwner, categoryID, subCategoryID **uuid.UUID) error {
	var salon models.Salon
	if err := findOwned(ctx, s.db, actor, &salon, in.SalonID, "salon"); err != nil {
		return err
	}

	refs, err := s.gallery.stage(ctx, in.Images)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		*categoryID, *subCategoryID, err = s.classify(ctx, tx, actor, kind, in.Category, in.SubCategory)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return err
		}
		if len(refs) > 0 {
			_, err = s.gallery.replace(tx, actor.AccountID, item, refs)
		}
		return err
	})
	if err != nil {
		s.gallery.discard(ctx, refs)
	}
	return err
}

func (s *CatalogService) UpdateService(ctx context.Context, actor Actor, id uuid.UUID, patch CatalogPatch) (*models.Service, error) {
	var service models.Service
	if err := findOwned(ctx, s.db.Preload("Category"), actor, &service, id, "service"); err != nil {
		return nil, err
	}
	if patch.Duration != nil {
		if *patch.Duration < 0 {
			return nil, apperrors.Validation("duration", "must not be negative")
		}
		service.Duration = *patch.Duration
	}
	if patch.ClearDiscount {
		service.DiscountPercentage = decimal.NullDecimal{}
	} else if patch.DiscountPercentage != nil {
		if err := validateDiscount(*patch.DiscountPercentage); err != nil {
			return nil, err
		}
		service.DiscountPercentage = decimal.NewNullDecimal(*patch.DiscountPercentage)
	}
	item := catalogItem{
		owner:         &service,
		name:          &service.Name,
		description:   &service.Description,
		price:         &service.Price,
		isActive:      &service.IsActive,
		categoryID:    &service.CategoryID,
		subCategoryID: &service.SubCategoryID,
		category:      service.Category,
	}
	if err := s.update(ctx, actor, models.CategoryService, item, patch); err != nil {
		return nil, err
	}
	return s.GetService(ctx, actor, id)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, patch CatalogPatch) (*models.Product, error) {
	var product models.Product
	if err := findOwned(ctx, s.db.Preload("Category"), actor, &product, id, "product"); err != nil {
		return nil, err
	}
	item := catalogItem{
		owner:         &product,
		name:          &product.Name,
		description:   &product.Description,
		price:         &product.Price,
		isActive:      &product.IsActive,
		categoryID:    &product.CategoryID,
		subCategoryID: &product.SubCategoryID,
		category:      product.Category,
	}
	if err := s.update(ctx, actor, models.CategoryProduct, item, patch); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, actor, id)
}

// catalogItem points at the fields services and products share.
type catalogItem struct {
	owner         models.ImageOwner
	name          *string
	description   *string
	price         *decimal.Decimal
	isActive      *bool
	categoryID    **uuid.UUID
	subCategoryID **uuid.UUID
	category      *models.Category
}

func (s *CatalogService) update(ctx context.Context, actor Actor, kind models.CategoryType, item catalogItem, patch CatalogPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return apperrors.Validation("name", "must not be empty")
		}
		*item.name = name
	}
	if patch.Description != nil {
		*item.description = *patch.Description
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return apperrors.Validation("price", "must not be negative")
		}
		*item.price = *patch.Price
	}
	if patch.IsActive != nil {
		*item.isActive = *patch.IsActive
	}
	if err := validateUploads(patch.Images, models.MaxCatalogImages); err != nil {
		return err
	}

	refs, err := s.gallery.stage(ctx, patch.Images)
	if err != nil {
		return err
	}
	var detached []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.Category != nil || patch.SubCategory != nil {
			category := ""
			if item.category != nil {
				category = item.category.Name
			}
			if patch.Category != nil {
				category = *patch.Category
			}
			sub := ""
			if patch.SubCategory != nil {
				sub = *patch.SubCategory
			}
			var err error
			*item.categoryID, *item.subCategoryID, err = s.classify(ctx, tx, actor, kind, category, sub)
			if err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(item.owner).Error; err != nil {
			return err
		}
		if len(refs) > 0 {
			var err error
			detached, err = s.gallery.replace(tx, actor.AccountID, item.owner, refs)
			return err
		}
		return nil
	})
	if err != nil {
		s.gallery.discard(ctx, refs)
		return err
	}
	s.gallery.discard(ctx, detached)
	return nil
}

// classify resolves the category and optional sub-category labels.
func (s *CatalogService) classify(ctx context.Context, tx *gorm.DB, actor Actor, kind models.CategoryType, category, sub string) (*uuid.UUID, *uuid.UUID, error) {
	categories := s.categories.WithTx(tx)
	categoryID, err := categories.resolveOptional(ctx, actor, category, kind)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(sub) == "" {
		return categoryID, nil, nil
	}
	if categoryID == nil {
		return nil, nil, apperrors.Validation("sub_category", "requires a category")
	}
	subCategory, err := categories.ResolveSubCategory(ctx, actor, sub, kind, *categoryID)
	if err != nil {
		return nil, nil, err
	}
	return categoryID, &subCategory.ID, nil
}

func (s *CatalogService) GetService(ctx context.Context, actor Actor, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := findOwned(ctx, preloadCatalog(s.db), actor, &service, id, "service"); err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, actor Actor, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := findOwned(ctx, preloadCatalog(s.db), actor, &product, id, "product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) ListServices(ctx context.Context, actor Actor, f CatalogFilter) ([]models.Service, error) {
	var services []models.Service
	if err := catalogQuery(s.db.WithContext(ctx), actor, f).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, actor Actor, f CatalogFilter) ([]models.Product, error) {
	var products []models.Product
	if err := catalogQuery(s.db.WithContext(ctx), actor, f).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DeactivateService hides a service from new bookings. Rows stay because
// past bookings still reference them.
func (s *CatalogService) DeactivateService(ctx context.Context, actor Actor, id uuid.UUID) error {
	inactive := false
	_, err := s.UpdateService(ctx, actor, id, CatalogPatch{IsActive: &inactive})
	return err
}

func (s *CatalogService) DeactivateProduct(ctx context.Context, actor Actor, id uuid.UUID) error {
	inactive := false
	_, err := s.UpdateProduct(ctx, actor, id, CatalogPatch{IsActive: &inactive})
	return err
}

func catalogQuery(db *gorm.DB, actor Actor, f CatalogFilter) *gorm.DB {
	q := tenant(preloadCatalog(db), actor).Order("name")
	if f.SalonID != nil {
		q = q.Where("salon_id = ?", *f.SalonID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	return q
}

func preloadCatalog(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("SubCategory").Preload("Images")
}

func validateCatalogInput(in CatalogInput, isService bool) error {
	verr := &apperrors.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "is required")
	}
	if in.Price.IsNegative() {
		verr.Add("price", "must not be negative")
	}
	if isService {
		if in.Duration < 0 {
			verr.Add("duration", "must not be negative")
		}
		if in.DiscountPercentage != nil {
			if err := validateDiscount(*in.DiscountPercentage); err != nil {
				verr.Add("discount_percentage", "must be between 0 and 100")
			}
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return validateUploads(in.Images, models.MaxCatalogImages)
}

func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return apperrors.Validation("discount_percentage", "must be between 0 and 100")
	}
	return nil
}
