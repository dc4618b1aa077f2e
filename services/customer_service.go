package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultLeadSource tags customers created without an explicit source.
const DefaultLeadSource = "Booking"

type ContactInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type ResolveCustomerInput struct {
	Contact ContactInput
	Source  string
	SalonID *uuid.UUID
	Type    models.CustomerType
	Notes   string
}

// CustomerPatch edits a customer profile in place. Nil fields are left alone.
type CustomerPatch struct {
	FirstName *string              `json:"first_name"`
	LastName  *string              `json:"last_name"`
	Phone     *string              `json:"phone"`
	Email     *string              `json:"email"`
	Notes     *string              `json:"notes"`
	Type      *models.CustomerType `json:"type"`
}

type CustomerService struct {
	db         *gorm.DB
	categories *CategoryService
}

func NewCustomerService(db *gorm.DB, categories *CategoryService) *CustomerService {
	return &CustomerService{db: db, categories: categories}
}

func (s *CustomerService) WithTx(tx *gorm.DB) *CustomerService {
	return &CustomerService{db: tx, categories: s.categories.WithTx(tx)}
}

// Resolve finds the account's customer by phone or creates one. An existing
// customer is returned untouched, so the first contact details seen win.
func (s *CustomerService) Resolve(ctx context.Context, actor Actor, in ResolveCustomerInput) (*models.Customer, error) {
	phone := utils.CleanPhone(in.Contact.Phone)
	if phone == "" {
		return nil, apperrors.Validation("phone", "is required")
	}
	if !utils.ValidatePhone(phone) {
		return nil, apperrors.Validation("phone", "invalid phone number format")
	}

	customerType := in.Type
	if customerType == "" {
		customerType = models.CustomerTypeCustomer
	}
	if customerType != models.CustomerTypeCustomer && customerType != models.CustomerTypeLead {
		return nil, apperrors.Validation("type", "must be LEAD or CUSTOMER")
	}

	byPhone := func(db *gorm.DB) *gorm.DB {
		return db.Where("account_id = ? AND phone = ?", actor.AccountID, phone)
	}

	var existing models.Customer
	err := byPhone(s.db.WithContext(ctx)).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sourceLabel := in.Source
	if strings.TrimSpace(sourceLabel) == "" {
		sourceLabel = DefaultLeadSource
	}
	source, err := s.categories.Resolve(ctx, actor, sourceLabel, models.CategoryLeadSource)
	if err != nil {
		return nil, err
	}

	customer, created, err := getOrCreate(s.db.WithContext(ctx), byPhone, func() *models.Customer {
		return &models.Customer{
			AccountID: actor.AccountID,
			SalonID:   in.SalonID,
			FirstName: strings.TrimSpace(in.Contact.FirstName),
			LastName:  strings.TrimSpace(in.Contact.LastName),
			Phone:     phone,
			Email:     strings.TrimSpace(in.Contact.Email),
			Type:      customerType,
			Notes:     in.Notes,
			IsActive:  true,
			SourceID:  &source.ID,
		}
	})
	if err != nil {
		return nil, err
	}
	if created {
		utils.LoggerFromContext(ctx).Info("Customer created",
			slog.String("customer_id", customer.ID.String()),
			slog.String("type", string(customerType)),
		)
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, actor Actor, salonID *uuid.UUID, customerType models.CustomerType) ([]models.Customer, error) {
	q := tenant(s.db.WithContext(ctx), actor).Preload("Source").Order("created_at DESC")
	if salonID != nil {
		q = q.Where("salon_id = ?", *salonID)
	}
	if customerType != "" {
		q = q.Where("type = ?", customerType)
	}
	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := findOwned(ctx, s.db.Preload("Source"), actor, &customer, id, "customer"); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Update(ctx context.Context, actor Actor, id uuid.UUID, patch CustomerPatch) (*models.Customer, error) {
	var customer models.Customer
	if err := findOwned(ctx, s.db, actor, &customer, id, "customer"); err != nil {
		return nil, err
	}
	if err := s.applyPatch(ctx, &customer, patch); err != nil {
		return nil, err
	}
	return &customer, nil
}

// applyPatch writes the given fields onto an existing customer row.
func (s *CustomerService) applyPatch(ctx context.Context, customer *models.Customer, patch CustomerPatch) error {
	updates := map[string]interface{}{}
	if patch.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*patch.FirstName)
		updates["first_name"] = customer.FirstName
	}
	if patch.LastName != nil {
		customer.LastName = strings.TrimSpace(*patch.LastName)
		updates["last_name"] = customer.LastName
	}
	if patch.Email != nil {
		customer.Email = strings.TrimSpace(*patch.Email)
		updates["email"] = customer.Email
	}
	if patch.Notes != nil {
		customer.Notes = *patch.Notes
		updates["notes"] = customer.Notes
	}
	if patch.Type != nil {
		if *patch.Type != models.CustomerTypeCustomer && *patch.Type != models.CustomerTypeLead {
			return apperrors.Validation("type", "must be LEAD or CUSTOMER")
		}
		customer.Type = *patch.Type
		updates["type"] = customer.Type
	}
	if patch.Phone != nil {
		phone := utils.CleanPhone(*patch.Phone)
		if !utils.ValidatePhone(phone) {
			return apperrors.Validation("phone", "invalid phone number format")
		}
		customer.Phone = phone
		updates["phone"] = phone
	}
	if len(updates) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Model(customer).Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("customer", "phone")
	}
	return err
}
