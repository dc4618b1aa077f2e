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

type CategoryResolver interface {
	Resolve(ctx context.Context, actor services.Actor, label string, kind models.CategoryType) (*models.Category, error)
	ResolveSubCategory(ctx context.Context, actor services.Actor, label string, kind models.CategoryType, parentID uuid.UUID) (*models.Category, error)
	List(ctx context.Context, actor services.Actor, kind models.CategoryType) ([]models.Category, error)
}

type CategoryInput struct {
	Name   string              `json:"name" binding:"required"`
	Type   models.CategoryType `json:"category_type" binding:"required"`
	Parent *uuid.UUID          `json:"parent"`
}

type CategoryController struct {
	categories CategoryResolver
}

func NewCategoryController(categories CategoryResolver) *CategoryController {
	return &CategoryController{categories: categories}
}

// CreateCategory returns the account's category for the label, creating it
// on first use.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var (
		category *models.Category
		err      error
	)
	if input.Parent != nil {
		category, err = cc.categories.ResolveSubCategory(c.Request.Context(), actor, input.Name, input.Type, *input.Parent)
	} else {
		category, err = cc.categories.Resolve(c.Request.Context(), actor, input.Name, input.Type)
	}
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// GetCategories lists categories, optionally of one ?type=
func (cc *CategoryController) GetCategories(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	categories, err := cc.categories.List(c.Request.Context(), actor, models.CategoryType(c.Query("type")))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
