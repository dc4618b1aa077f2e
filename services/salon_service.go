package services

import (
	"context"
	"strings"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalonInput struct {
	Name         string
	Address      string
	Phone        string
	OpeningHours models.JSONB
}

type SalonPatch struct {
	Name         *string
	Address      *string
	Phone        *string
	OpeningHours models.JSONB
	IsActive     *bool
}

type SalonService struct {
	db *gorm.DB
}

func NewSalonService(db *gorm.DB) *SalonService {
	return &SalonService{db: db}
}

func (s *SalonService) Create(ctx context.Context, actor Actor, in SalonInput) (*models.Salon, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("name", "is required")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, apperrors.Validation("phone", "invalid phone number format")
	}
	hours := in.OpeningHours
	if hours == nil {
		hours = models.DefaultOpeningHours()
	}
	salon := &models.Salon{
		AccountID:    actor.AccountID,
		Name:         name,
		Address:      in.Address,
		Phone:        utils.CleanPhone(in.Phone),
		OpeningHours: hours,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(salon).Error; err != nil {
		return nil, err
	}
	return salon, nil
}

func (s *SalonService) List(ctx context.Context, actor Actor) ([]models.Salon, error) {
	var salons []models.Salon
	if err := tenant(s.db.WithContext(ctx), actor).Order("name").Find(&salons).Error; err != nil {
		return nil, err
	}
	return salons, nil
}

func (s *SalonService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Salon, error) {
	var salon models.Salon
	if err := findOwned(ctx, s.db, actor, &salon, id, "salon"); err != nil {
		return nil, err
	}
	return &salon, nil
}

func (s *SalonService) Update(ctx context.Context, actor Actor, id uuid.UUID, patch SalonPatch) (*models.Salon, error) {
	salon, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.Validation("name", "must not be empty")
		}
		updates["name"] = name
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.Phone != nil {
		if *patch.Phone != "" && !utils.ValidatePhone(*patch.Phone) {
			return nil, apperrors.Validation("phone", "invalid phone number format")
		}
		updates["phone"] = utils.CleanPhone(*patch.Phone)
	}
	if patch.OpeningHours != nil {
		updates["opening_hours"] = patch.OpeningHours
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(salon).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, actor, id)
}
