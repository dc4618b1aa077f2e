package controllers

import (
	"context"
	"net/http"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CatalogManager interface {
	CreateService(ctx context.Context, actor services.Actor, in services.CatalogInput) (*models.Service, error)
	UpdateService(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.CatalogPatch) (*models.Service, error)
	GetService(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Service, error)
	ListServices(ctx context.Context, actor services.Actor, f services.CatalogFilter) ([]models.Service, error)
	DeactivateService(ctx context.Context, actor services.Actor, id uuid.UUID) error

	CreateProduct(ctx context.Context, actor services.Actor, in services.CatalogInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.CatalogPatch) (*models.Product, error)
	GetProduct(ctx context.Context, actor services.Actor, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, actor services.Actor, f services.CatalogFilter) ([]models.Product, error)
	DeactivateProduct(ctx context.Context, actor services.Actor, id uuid.UUID) error
}

// CreateCatalogInput defines the expected JSON structure for a service or
// product. Discount and duration are ignored for products.
type CreateCatalogInput struct {
	SalonID            uuid.UUID        `json:"salon_id" binding:"required"`
	Name               string           `json:"name" binding:"required"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	Duration           int              `json:"duration" binding:"min=0"` // in minutes
	Category           string           `json:"category"`
	SubCategory        string           `json:"sub_category"`
}

type UpdateCatalogInput struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	ClearDiscount      bool             `json:"clear_discount"`
	Duration           *int             `json:"duration"`
	Category           *string          `json:"category"`
	SubCategory        *string          `json:"sub_category"`
	IsActive           *bool            `json:"isActive"`
}

func (in CreateCatalogInput) toService(images []services.ImageUpload) services.CatalogInput {
	return services.CatalogInput{
		SalonID:            in.SalonID,
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		DiscountPercentage: in.DiscountPercentage,
		Duration:           in.Duration,
		Category:           in.Category,
		SubCategory:        in.SubCategory,
		Images:             images,
	}
}

func (in UpdateCatalogInput) toService(images []services.ImageUpload) services.CatalogPatch {
	return services.CatalogPatch{
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		DiscountPercentage: in.DiscountPercentage,
		ClearDiscount:      in.ClearDiscount,
		Duration:           in.Duration,
		Category:           in.Category,
		SubCategory:        in.SubCategory,
		IsActive:           in.IsActive,
		Images:             images,
	}
}

type CatalogController struct {
	catalog CatalogManager
}

func NewCatalogController(catalog CatalogManager) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func catalogFilter(c *gin.Context) (services.CatalogFilter, bool) {
	salonID, ok := queryID(c, "salon_id")
	return services.CatalogFilter{SalonID: salonID, ActiveOnly: c.Query("active") == "true"}, ok
}

// CreateService adds a service. Accepts JSON or multipart with up to two images.
func (cc *CatalogController) CreateService(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var input CreateCatalogInput
	images, ok := bindPayload(c, &input, models.MaxCatalogImages)
	if !ok {
		return
	}

	service, err := cc.catalog.CreateService(c.Request.Context(), actor, input.toService(images))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves the account's services, optionally by salon_id and active=true
func (cc *CatalogController) GetServices(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	filter, ok := catalogFilter(c)
	if !ok {
		return
	}

	list, err := cc.catalog.ListServices(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (cc *CatalogController) GetService(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}

	service, err := cc.catalog.GetService(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService edits a service. Sent images replace its photos.
func (cc *CatalogController) UpdateService(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}
	var input UpdateCatalogInput
	images, ok := bindPayload(c, &input, models.MaxCatalogImages)
	if !ok {
		return
	}

	service, err := cc.catalog.UpdateService(c.Request.Context(), actor, id, input.toService(images))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService deactivates a service; past bookings keep referencing it
func (cc *CatalogController) DeleteService(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "service")
	if !ok {
		return
	}

	if err := cc.catalog.DeactivateService(c.Request.Context(), actor, id); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deactivated successfully"})
}

func (cc *CatalogController) CreateProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var input CreateCatalogInput
	images, ok := bindPayload(c, &input, models.MaxCatalogImages)
	if !ok {
		return
	}

	product, err := cc.catalog.CreateProduct(c.Request.Context(), actor, input.toService(images))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (cc *CatalogController) GetProducts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	filter, ok := catalogFilter(c)
	if !ok {
		return
	}

	list, err := cc.catalog.ListProducts(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (cc *CatalogController) GetProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	product, err := cc.catalog.GetProduct(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (cc *CatalogController) UpdateProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	var input UpdateCatalogInput
	images, ok := bindPayload(c, &input, models.MaxCatalogImages)
	if !ok {
		return
	}

	product, err := cc.catalog.UpdateProduct(c.Request.Context(), actor, id, input.toService(images))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (cc *CatalogController) DeleteProduct(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	if err := cc.catalog.DeactivateProduct(c.Request.Context(), actor, id); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated successfully"})
}
