package services

import (
	"context"
	"errors"
	"strings"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateInput struct {
	Type     string
	Message  string
	IsActive *bool
}

type TemplatePatch struct {
	Message  *string
	IsActive *bool
}

// TemplateService manages the WhatsApp/SMS templates of an account.
type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

func validTemplateType(t string) bool {
	return t == models.TemplateConfirmation || t == models.TemplateReminder
}

func (s *TemplateService) Create(ctx context.Context, actor Actor, in TemplateInput) (*models.ReminderTemplate, error) {
	if !validTemplateType(in.Type) {
		return nil, apperrors.Validation("type", "must be confirmation or reminder")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, apperrors.Validation("message", "is required")
	}
	active := in.IsActive == nil || *in.IsActive
	template := &models.ReminderTemplate{
		AccountID: actor.AccountID,
		Type:      in.Type,
		Message:   in.Message,
		IsActive:  active,
	}
	err := s.db.WithContext(ctx).Create(template).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperrors.Conflict("template", "type")
	}
	if err != nil {
		return nil, err
	}
	// Create skips zero values that carry a column default and reads the
	// default back into the struct.
	if !active {
		if err := s.db.WithContext(ctx).Model(template).Update("is_active", false).Error; err != nil {
			return nil, err
		}
		template.IsActive = false
	}
	return template, nil
}

func (s *TemplateService) List(ctx context.Context, actor Actor) ([]models.ReminderTemplate, error) {
	var templates []models.ReminderTemplate
	if err := tenant(s.db.WithContext(ctx), actor).Order("type").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *TemplateService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.ReminderTemplate, error) {
	var template models.ReminderTemplate
	if err := findOwned(ctx, s.db, actor, &template, id, "template"); err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *TemplateService) Update(ctx context.Context, actor Actor, id uuid.UUID, patch TemplatePatch) (*models.ReminderTemplate, error) {
	template, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Message != nil {
		if strings.TrimSpace(*patch.Message) == "" {
			return nil, apperrors.Validation("message", "must not be empty")
		}
		updates["message"] = *patch.Message
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(template).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, actor, id)
}

func (s *TemplateService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	template, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(template).Error
}
