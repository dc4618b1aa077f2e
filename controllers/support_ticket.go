package controllers

import (
	"context"
	"net/http"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketDesk interface {
	Create(ctx context.Context, actor services.Actor, in services.TicketInput) (*models.SupportTicket, error)
	Update(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.TicketPatch) (*models.SupportTicket, error)
	Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.SupportTicket, error)
	List(ctx context.Context, actor services.Actor, status models.TicketStatus) ([]models.SupportTicket, error)
}

type CreateTicketInput struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
}

type UpdateTicketInput struct {
	Subject     *string              `json:"subject"`
	Description *string              `json:"description"`
	Status      *models.TicketStatus `json:"status"`
}

type SupportTicketController struct {
	tickets TicketDesk
}

func NewSupportTicketController(tickets TicketDesk) *SupportTicketController {
	return &SupportTicketController{tickets: tickets}
}

// CreateTicket opens a ticket. Accepts JSON or multipart with up to three images.
func (tc *SupportTicketController) CreateTicket(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var input CreateTicketInput
	images, ok := bindPayload(c, &input, models.MaxTicketImages)
	if !ok {
		return
	}

	ticket, err := tc.tickets.Create(c.Request.Context(), actor, services.TicketInput{
		Subject:     input.Subject,
		Description: input.Description,
		Images:      images,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (tc *SupportTicketController) UpdateTicket(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "ticket")
	if !ok {
		return
	}
	var input UpdateTicketInput
	images, ok := bindPayload(c, &input, models.MaxTicketImages)
	if !ok {
		return
	}

	ticket, err := tc.tickets.Update(c.Request.Context(), actor, id, services.TicketPatch{
		Subject:     input.Subject,
		Description: input.Description,
		Status:      input.Status,
		Images:      images,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (tc *SupportTicketController) GetTicket(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "ticket")
	if !ok {
		return
	}

	ticket, err := tc.tickets.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (tc *SupportTicketController) GetTickets(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	tickets, err := tc.tickets.List(c.Request.Context(), actor, models.TicketStatus(c.Query("status")))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}
