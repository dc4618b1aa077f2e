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

// BookingManager is the booking workflow the HTTP layer drives.
type BookingManager interface {
	Create(ctx context.Context, actor services.Actor, salonID uuid.UUID, in services.BookingInput) (*services.BookingView, error)
	Update(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.BookingPatch) (*services.BookingView, error)
	Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*services.BookingView, error)
	List(ctx context.Context, actor services.Actor, f services.BookingFilter) ([]*services.BookingView, error)
	Receipt(ctx context.Context, actor services.Actor, id uuid.UUID) (*services.Receipt, error)
	RenderReceipt(ctx context.Context, actor services.Actor, id uuid.UUID) ([]byte, string, error)
}

// CreateBookingInput defines the expected JSON structure for a new booking
type CreateBookingInput struct {
	Customer    services.ContactInput `json:"customer"`
	Source      string                `json:"source"`
	Services    []uuid.UUID           `json:"services"`
	Products    []uuid.UUID           `json:"products"`
	Employee    *uuid.UUID            `json:"employee"`
	Chair       *uuid.UUID            `json:"chair"`
	BookingDate string                `json:"booking_date" binding:"required"`
	BookingTime string                `json:"booking_time" binding:"required"`
	Status      models.BookingStatus  `json:"status"`
	TipsAmount  decimal.Decimal       `json:"tips_amount"`
	PaymentType string                `json:"payment_type"`
	Notes       string                `json:"notes"`
}

// UpdateBookingInput is a partial update. An absent or null collection is
// left alone, an empty one is cleared. The nil uuid unassigns employee or chair.
type UpdateBookingInput struct {
	Customer           *services.CustomerPatch `json:"customer"`
	Services           *[]uuid.UUID            `json:"services"`
	Products           *[]uuid.UUID            `json:"products"`
	Employee           *uuid.UUID              `json:"employee"`
	Chair              *uuid.UUID              `json:"chair"`
	BookingDate        *string                 `json:"booking_date"`
	BookingTime        *string                 `json:"booking_time"`
	Status             *models.BookingStatus   `json:"status"`
	CancellationReason *string                 `json:"cancellation_reason"`
	TipsAmount         *decimal.Decimal        `json:"tips_amount"`
	PaymentType        *string                 `json:"payment_type"`
	Notes              *string                 `json:"notes"`
}

type BookingController struct {
	bookings BookingManager
}

func NewBookingController(bookings BookingManager) *BookingController {
	return &BookingController{bookings: bookings}
}

// CreateBooking books a customer into a salon. Accepts JSON, or multipart
// with the JSON in "payload" and up to three "images".
func (bc *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	salonID, ok := paramID(c, "salonId", "salon")
	if !ok {
		return
	}

	var input CreateBookingInput
	images, ok := bindPayload(c, &input, models.MaxBookingImages)
	if !ok {
		return
	}
	date, err := utils.ParseDate(input.BookingDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking_date, expected YYYY-MM-DD")
		return
	}

	view, err := bc.bookings.Create(c.Request.Context(), actor, salonID, services.BookingInput{
		Customer:    input.Customer,
		Source:      input.Source,
		ServiceIDs:  input.Services,
		ProductIDs:  input.Products,
		EmployeeID:  input.Employee,
		ChairID:     input.Chair,
		BookingDate: date,
		BookingTime: input.BookingTime,
		Status:      input.Status,
		TipsAmount:  input.TipsAmount,
		PaymentType: input.PaymentType,
		Notes:       input.Notes,
		Images:      images,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UpdateBooking applies a partial update. Sent images replace the gallery.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "booking")
	if !ok {
		return
	}

	var input UpdateBookingInput
	images, ok := bindPayload(c, &input, models.MaxBookingImages)
	if !ok {
		return
	}

	patch := services.BookingPatch{
		Customer:           input.Customer,
		ServiceIDs:         input.Services,
		ProductIDs:         input.Products,
		EmployeeID:         input.Employee,
		ChairID:            input.Chair,
		BookingTime:        input.BookingTime,
		Status:             input.Status,
		CancellationReason: input.CancellationReason,
		TipsAmount:         input.TipsAmount,
		PaymentType:        input.PaymentType,
		Notes:              input.Notes,
		Images:             images,
	}
	if input.BookingDate != nil {
		date, err := utils.ParseDate(*input.BookingDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking_date, expected YYYY-MM-DD")
			return
		}
		patch.BookingDate = &date
	}

	view, err := bc.bookings.Update(c.Request.Context(), actor, id, patch)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetBooking retrieves a booking with its derived totals
func (bc *BookingController) GetBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "booking")
	if !ok {
		return
	}

	view, err := bc.bookings.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetBookings lists bookings, filtered by salon_id, customer_id, status,
// from and to.
func (bc *BookingController) GetBookings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	filter := services.BookingFilter{Status: models.BookingStatus(c.Query("status"))}
	if filter.SalonID, ok = queryID(c, "salon_id"); !ok {
		return
	}
	if filter.CustomerID, ok = queryID(c, "customer_id"); !ok {
		return
	}
	if filter.From, ok = queryDate(c, "from"); !ok {
		return
	}
	if filter.To, ok = queryDate(c, "to"); !ok {
		return
	}

	views, err := bc.bookings.List(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
