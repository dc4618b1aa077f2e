package services

import (
	"context"
	"strings"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketInput struct {
	Subject     string
	Description string
	Images      []ImageUpload
}

// TicketPatch edits a ticket. Images replace the gallery when non-empty.
type TicketPatch struct {
	Subject     *string
	Description *string
	Status      *models.TicketStatus
	Images      []ImageUpload
}

type SupportTicketService struct {
	db      *gorm.DB
	gallery gallery
}

func NewSupportTicketService(db *gorm.DB, images ImageStore) *SupportTicketService {
	return &SupportTicketService{db: db, gallery: gallery{store: images}}
}

func (s *SupportTicketService) Create(ctx context.Context, actor Actor, in TicketInput) (*models.SupportTicket, error) {
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return nil, apperrors.Validation("subject", "is required")
	}
	if err := validateUploads(in.Images, models.MaxTicketImages); err != nil {
		return nil, err
	}

	refs, err := s.gallery.stage(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	ticket := &models.SupportTicket{
		AccountID:   actor.AccountID,
		CreatedByID: actor.UserID,
		Subject:     subject,
		Description: in.Description,
		Status:      models.TicketOpen,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(ticket).Error; err != nil {
			return err
		}
		if len(refs) > 0 {
			_, err := s.gallery.replace(tx, actor.AccountID, ticket, refs)
			return err
		}
		return nil
	})
	if err != nil {
		s.gallery.discard(ctx, refs)
		return nil, err
	}
	return s.Get(ctx, actor, ticket.ID)
}

func (s *SupportTicketService) Update(ctx context.Context, actor Actor, id uuid.UUID, patch TicketPatch) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := findOwned(ctx, s.db, actor, &ticket, id, "support ticket"); err != nil {
		return nil, err
	}
	if patch.Subject != nil {
		if ticket.Subject = strings.TrimSpace(*patch.Subject); ticket.Subject == "" {
			return nil, apperrors.Validation("subject", "must not be empty")
		}
	}
	if patch.Description != nil {
		ticket.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperrors.Validation("status", "unrecognized ticket status")
		}
		ticket.Status = *patch.Status
	}
	if err := validateUploads(patch.Images, models.MaxTicketImages); err != nil {
		return nil, err
	}

	refs, err := s.gallery.stage(ctx, patch.Images)
	if err != nil {
		return nil, err
	}
	var detached []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&ticket).Error; err != nil {
			return err
		}
		if len(refs) > 0 {
			var err error
			detached, err = s.gallery.replace(tx, actor.AccountID, &ticket, refs)
			return err
		}
		return nil
	})
	if err != nil {
		s.gallery.discard(ctx, refs)
		return nil, err
	}
	s.gallery.discard(ctx, detached)
	return s.Get(ctx, actor, id)
}

func (s *SupportTicketService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := findOwned(ctx, s.db.Preload("Images"), actor, &ticket, id, "support ticket"); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *SupportTicketService) List(ctx context.Context, actor Actor, status models.TicketStatus) ([]models.SupportTicket, error) {
	q := tenant(s.db.WithContext(ctx).Preload("Images"), actor).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tickets []models.SupportTicket
	if err := q.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}
