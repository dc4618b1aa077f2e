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

type TemplateStore interface {
	Create(ctx context.Context, actor services.Actor, in services.TemplateInput) (*models.ReminderTemplate, error)
	List(ctx context.Context, actor services.Actor) ([]models.ReminderTemplate, error)
	Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.ReminderTemplate, error)
	Update(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.TemplatePatch) (*models.ReminderTemplate, error)
	Delete(ctx context.Context, actor services.Actor, id uuid.UUID) error
}

// CreateReminderTemplateInput defines the expected JSON structure
type CreateReminderTemplateInput struct {
	Type     string `json:"type" binding:"required,oneof=confirmation reminder"`
	Message  string `json:"message" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// UpdateReminderTemplateInput defines the expected JSON structure
type UpdateReminderTemplateInput struct {
	Message  *string `json:"message"`
	IsActive *bool   `json:"isActive"`
}

type ReminderController struct {
	templates TemplateStore
}

func NewReminderController(templates TemplateStore) *ReminderController {
	return &ReminderController{templates: templates}
}

// CreateReminderTemplate overrides one of the default WhatsApp messages
func (rc *ReminderController) CreateReminderTemplate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreateReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template, err := rc.templates.Create(c.Request.Context(), actor, services.TemplateInput{
		Type:     input.Type,
		Message:  input.Message,
		IsActive: input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetReminderTemplates retrieves all reminder templates for the account
func (rc *ReminderController) GetReminderTemplates(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	templates, err := rc.templates.List(c.Request.Context(), actor)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetReminderTemplate retrieves a specific template by ID
func (rc *ReminderController) GetReminderTemplate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "template")
	if !ok {
		return
	}

	template, err := rc.templates.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// UpdateReminderTemplate updates an existing template
func (rc *ReminderController) UpdateReminderTemplate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "template")
	if !ok {
		return
	}

	var input UpdateReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template, err := rc.templates.Update(c.Request.Context(), actor, id, services.TemplatePatch{
		Message:  input.Message,
		IsActive: input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteReminderTemplate deletes a template; the default message applies again
func (rc *ReminderController) DeleteReminderTemplate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "template")
	if !ok {
		return
	}

	if err := rc.templates.Delete(c.Request.Context(), actor, id); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
