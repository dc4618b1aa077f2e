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

type SalonDirectory interface {
	Create(ctx context.Context, actor services.Actor, in services.SalonInput) (*models.Salon, error)
	List(ctx context.Context, actor services.Actor) ([]models.Salon, error)
	Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Salon, error)
	Update(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.SalonPatch) (*models.Salon, error)
}

type CreateSalonInput struct {
	Name         string       `json:"name" binding:"required"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	OpeningHours models.JSONB `json:"opening_hours"`
}

type UpdateSalonInput struct {
	Name         *string      `json:"name"`
	Address      *string      `json:"address"`
	Phone        *string      `json:"phone"`
	OpeningHours models.JSONB `json:"opening_hours"`
	IsActive     *bool        `json:"isActive"`
}

type SalonController struct {
	salons SalonDirectory
}

func NewSalonController(salons SalonDirectory) *SalonController {
	return &SalonController{salons: salons}
}

func (sc *SalonController) CreateSalon(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salon, err := sc.salons.Create(c.Request.Context(), actor, services.SalonInput{
		Name:         input.Name,
		Address:      input.Address,
		Phone:        input.Phone,
		OpeningHours: input.OpeningHours,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, salon)
}

func (sc *SalonController) GetSalons(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	salons, err := sc.salons.List(c.Request.Context(), actor)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, salons)
}

func (sc *SalonController) GetSalon(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "salonId", "salon")
	if !ok {
		return
	}

	salon, err := sc.salons.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, salon)
}

// UpdateSalon edits salon details and opening hours
func (sc *SalonController) UpdateSalon(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "salonId", "salon")
	if !ok {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	salon, err := sc.salons.Update(c.Request.Context(), actor, id, services.SalonPatch{
		Name:         input.Name,
		Address:      input.Address,
		Phone:        input.Phone,
		OpeningHours: input.OpeningHours,
		IsActive:     input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, salon)
}
