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

type StaffDirectory interface {
	CreateEmployee(ctx context.Context, actor services.Actor, in services.EmployeeInput) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.EmployeePatch) (*models.Employee, error)
	ListEmployees(ctx context.Context, actor services.Actor, salonID *uuid.UUID) ([]models.Employee, error)
	CreateChair(ctx context.Context, actor services.Actor, in services.ChairInput) (*models.Chair, error)
	UpdateChair(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.ChairPatch) (*models.Chair, error)
	ListChairs(ctx context.Context, actor services.Actor, salonID *uuid.UUID) ([]models.Chair, error)
}

type EmployeeInput struct {
	SalonID     uuid.UUID `json:"salon_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email" binding:"omitempty,email"`
	Designation string    `json:"designation"`
}

type UpdateEmployeeInput struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Designation *string `json:"designation"`
	IsActive    *bool   `json:"isActive"`
}

type ChairInput struct {
	SalonID   uuid.UUID `json:"salon_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	ChairType string    `json:"chair_type"`
}

type UpdateChairInput struct {
	Name      *string `json:"name"`
	ChairType *string `json:"chair_type"`
	IsActive  *bool   `json:"isActive"`
}

type StaffController struct {
	staff StaffDirectory
}

func NewStaffController(staff StaffDirectory) *StaffController {
	return &StaffController{staff: staff}
}

func (sc *StaffController) GetEmployees(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	salonID, ok := queryID(c, "salon_id")
	if !ok {
		return
	}

	employees, err := sc.staff.ListEmployees(c.Request.Context(), actor, salonID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// AddEmployee adds an employee; the designation label is resolved to a category
func (sc *StaffController) AddEmployee(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	employee, err := sc.staff.CreateEmployee(c.Request.Context(), actor, services.EmployeeInput{
		SalonID:     input.SalonID,
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Designation: input.Designation,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (sc *StaffController) UpdateEmployee(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "employee")
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	employee, err := sc.staff.UpdateEmployee(c.Request.Context(), actor, id, services.EmployeePatch{
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Designation: input.Designation,
		IsActive:    input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (sc *StaffController) GetChairs(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	salonID, ok := queryID(c, "salon_id")
	if !ok {
		return
	}

	chairs, err := sc.staff.ListChairs(c.Request.Context(), actor, salonID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, chairs)
}

func (sc *StaffController) AddChair(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input ChairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	chair, err := sc.staff.CreateChair(c.Request.Context(), actor, services.ChairInput{
		SalonID:   input.SalonID,
		Name:      input.Name,
		ChairType: input.ChairType,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, chair)
}

func (sc *StaffController) UpdateChair(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "chair")
	if !ok {
		return
	}

	var input UpdateChairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	chair, err := sc.staff.UpdateChair(c.Request.Context(), actor, id, services.ChairPatch{
		Name:      input.Name,
		ChairType: input.ChairType,
		IsActive:  input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, chair)
}
