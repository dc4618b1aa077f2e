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

type CustomerDirectory interface {
	Resolve(ctx context.Context, actor services.Actor, in services.ResolveCustomerInput) (*models.Customer, error)
	List(ctx context.Context, actor services.Actor, salonID *uuid.UUID, customerType models.CustomerType) ([]models.Customer, error)
	Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.CustomerPatch) (*models.Customer, error)
}

// CreateCustomerInput defines the expected JSON structure for registering a customer or lead
type CreateCustomerInput struct {
	FirstName string              `json:"first_name" binding:"required"`
	LastName  string              `json:"last_name"`
	Phone     string              `json:"phone" binding:"required"`
	Email     string              `json:"email" binding:"omitempty,email"`
	Source    string              `json:"source"`
	SalonID   *uuid.UUID          `json:"salon_id"`
	Type      models.CustomerType `json:"type" binding:"omitempty,oneof=LEAD CUSTOMER"`
	Notes     string              `json:"notes"`
}

type CustomerController struct {
	customers CustomerDirectory
}

func NewCustomerController(customers CustomerDirectory) *CustomerController {
	return &CustomerController{customers: customers}
}

// CreateCustomer registers a customer. A phone already known to the account
// returns the existing record.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Resolve(c.Request.Context(), actor, services.ResolveCustomerInput{
		Contact: services.ContactInput{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Email:     input.Email,
		},
		Source:  input.Source,
		SalonID: input.SalonID,
		Type:    input.Type,
		Notes:   input.Notes,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, optionally by salon_id and type
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	salonID, ok := queryID(c, "salon_id")
	if !ok {
		return
	}

	customers, err := cc.customers.List(c.Request.Context(), actor, salonID, models.CustomerType(c.Query("type")))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := cc.customers.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer edits a customer's profile in place
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	var input services.CustomerPatch
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}
