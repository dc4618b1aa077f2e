package services

import (
	"context"
	"strings"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeInput struct {
	SalonID     uuid.UUID
	Name        string
	Phone       string
	Email       string
	Designation string
}

type EmployeePatch struct {
	Name        *string
	Phone       *string
	Email       *string
	Designation *string
	IsActive    *bool
}

type ChairInput struct {
	SalonID   uuid.UUID
	Name      string
	ChairType string
}

type ChairPatch struct {
	Name      *string
	ChairType *string
	IsActive  *bool
}

// StaffService manages the employees and chairs bookings are assigned to.
type StaffService struct {
	db         *gorm.DB
	categories *CategoryService
}

func NewStaffService(db *gorm.DB, categories *CategoryService) *StaffService {
	return &StaffService{db: db, categories: categories}
}

func (s *StaffService) CreateEmployee(ctx context.Context, actor Actor, in EmployeeInput) (*models.Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("name", "is required")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, apperrors.Validation("phone", "invalid phone number format")
	}
	var salon models.Salon
	if err := findOwned(ctx, s.db, actor, &salon, in.SalonID, "salon"); err != nil {
		return nil, err
	}

	employee := &models.Employee{
		AccountID: actor.AccountID,
		SalonID:   salon.ID,
		Name:      name,
		Phone:     utils.CleanPhone(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		IsActive:  true,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if employee.DesignationID, err = s.categories.WithTx(tx).resolveOptional(ctx, actor, in.Designation, models.CategoryEmployee); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(employee).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetEmployee(ctx, actor, employee.ID)
}

func (s *StaffService) UpdateEmployee(ctx context.Context, actor Actor, id uuid.UUID, patch EmployeePatch) (*models.Employee, error) {
	var employee models.Employee
	if err := findOwned(ctx, s.db, actor, &employee, id, "employee"); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if employee.Name = strings.TrimSpace(*patch.Name); employee.Name == "" {
			return nil, apperrors.Validation("name", "must not be empty")
		}
	}
	if patch.Phone != nil {
		if *patch.Phone != "" && !utils.ValidatePhone(*patch.Phone) {
			return nil, apperrors.Validation("phone", "invalid phone number format")
		}
		employee.Phone = utils.CleanPhone(*patch.Phone)
	}
	if patch.Email != nil {
		employee.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.IsActive != nil {
		employee.IsActive = *patch.IsActive
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.Designation != nil {
			var err error
			if employee.DesignationID, err = s.categories.WithTx(tx).resolveOptional(ctx, actor, *patch.Designation, models.CategoryEmployee); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(&employee).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetEmployee(ctx, actor, id)
}

func (s *StaffService) GetEmployee(ctx context.Context, actor Actor, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	if err := findOwned(ctx, s.db.Preload("Designation"), actor, &employee, id, "employee"); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *StaffService) ListEmployees(ctx context.Context, actor Actor, salonID *uuid.UUID) ([]models.Employee, error) {
	q := tenant(s.db.WithContext(ctx).Preload("Designation"), actor).Order("name")
	if salonID != nil {
		q = q.Where("salon_id = ?", *salonID)
	}
	var employees []models.Employee
	if err := q.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *StaffService) CreateChair(ctx context.Context, actor Actor, in ChairInput) (*models.Chair, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("name", "is required")
	}
	var salon models.Salon
	if err := findOwned(ctx, s.db, actor, &salon, in.SalonID, "salon"); err != nil {
		return nil, err
	}

	chair := &models.Chair{AccountID: actor.AccountID, SalonID: salon.ID, Name: name, IsActive: true}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if chair.ChairTypeID, err = s.categories.WithTx(tx).resolveOptional(ctx, actor, in.ChairType, models.CategoryChair); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(chair).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetChair(ctx, actor, chair.ID)
}

func (s *StaffService) UpdateChair(ctx context.Context, actor Actor, id uuid.UUID, patch ChairPatch) (*models.Chair, error) {
	var chair models.Chair
	if err := findOwned(ctx, s.db, actor, &chair, id, "chair"); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if chair.Name = strings.TrimSpace(*patch.Name); chair.Name == "" {
			return nil, apperrors.Validation("name", "must not be empty")
		}
	}
	if patch.IsActive != nil {
		chair.IsActive = *patch.IsActive
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.ChairType != nil {
			var err error
			if chair.ChairTypeID, err = s.categories.WithTx(tx).resolveOptional(ctx, actor, *patch.ChairType, models.CategoryChair); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(&chair).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetChair(ctx, actor, id)
}

func (s *StaffService) GetChair(ctx context.Context, actor Actor, id uuid.UUID) (*models.Chair, error) {
	var chair models.Chair
	if err := findOwned(ctx, s.db.Preload("ChairType"), actor, &chair, id, "chair"); err != nil {
		return nil, err
	}
	return &chair, nil
}

func (s *StaffService) ListChairs(ctx context.Context, actor Actor, salonID *uuid.UUID) ([]models.Chair, error) {
	q := tenant(s.db.WithContext(ctx).Preload("ChairType"), actor).Order("name")
	if salonID != nil {
		q = q.Where("salon_id = ?", *salonID)
	}
	var chairs []models.Chair
	if err := q.Find(&chairs).Error; err != nil {
		return nil, err
	}
	return chairs, nil
}
