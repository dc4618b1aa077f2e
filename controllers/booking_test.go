package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) Create(ctx context.Context, actor services.Actor, salonID uuid.UUID, in services.BookingInput) (*services.BookingView, error) {
	args := m.Called(ctx, actor, salonID, in)
	view, _ := args.Get(0).(*services.BookingView)
	return view, args.Error(1)
}

func (m *mockBookings) Update(ctx context.Context, actor services.Actor, id uuid.UUID, patch services.BookingPatch) (*services.BookingView, error) {
	args := m.Called(ctx, actor, id, patch)
	view, _ := args.Get(0).(*services.BookingView)
	return view, args.Error(1)
}

func (m *mockBookings) Get(ctx context.Context, actor services.Actor, id uuid.UUID) (*services.BookingView, error) {
	args := m.Called(ctx, actor, id)
	view, _ := args.Get(0).(*services.BookingView)
	return view, args.Error(1)
}

func (m *mockBookings) List(ctx context.Context, actor services.Actor, f services.BookingFilter) ([]*services.BookingView, error) {
	args := m.Called(ctx, actor, f)
	views, _ := args.Get(0).([]*services.BookingView)
	return views, args.Error(1)
}

func (m *mockBookings) Receipt(ctx context.Context, actor services.Actor, id uuid.UUID) (*services.Receipt, error) {
	args := m.Called(ctx, actor, id)
	receipt, _ := args.Get(0).(*services.Receipt)
	return receipt, args.Error(1)
}

func (m *mockBookings) RenderReceipt(ctx context.Context, actor services.Actor, id uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, actor, id)
	doc, _ := args.Get(0).([]byte)
	return doc, args.String(1), args.Error(2)
}

func bookingRouter(m *mockBookings) *gin.Engine {
	bc := NewBookingController(m)
	r := newTestRouter()
	r.POST("/api/salons/:salonId/bookings", bc.CreateBooking)
	r.GET("/api/bookings", bc.GetBookings)
	r.GET("/api/bookings/:id", bc.GetBooking)
	r.PATCH("/api/bookings/:id", bc.UpdateBooking)
	r.GET("/api/bookings/:id/receipt", bc.GetReceipt)
	return r
}

func sampleView() *services.BookingView {
	b := &models.Booking{
		BookingDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		BookingTime: "10:30",
		Status:      models.BookingPlaced,
		TipsAmount:  decimal.NewFromInt(5),
		Services:    []models.Service{{Name: "Haircut", Price: decimal.NewFromInt(40)}},
	}
	b.ID = uuid.New()
	return services.NewBookingView(b)
}

func TestCreateBooking_JSON(t *testing.T) {
	m := &mockBookings{}
	salonID := uuid.New()
	haircut := uuid.New()

	m.On("Create", mock.Anything, testActor, salonID, mock.MatchedBy(func(in services.BookingInput) bool {
		return in.Customer.Phone == "+15551234567" &&
			len(in.ServiceIDs) == 1 && in.ServiceIDs[0] == haircut &&
			in.BookingDate.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) &&
			in.TipsAmount.Equal(decimal.NewFromInt(5)) &&
			len(in.Images) == 0
	})).Return(sampleView(), nil).Once()

	w := doJSON(t, bookingRouter(m), http.MethodPost, "/api/salons/"+salonID.String()+"/bookings", gin.H{
		"customer":     gin.H{"first_name": "Ada", "phone": "+15551234567"},
		"services":     []string{haircut.String()},
		"booking_date": "2026-03-14",
		"booking_time": "10:30",
		"tips_amount":  "5",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "45", body["final_price"])
	assert.Equal(t, float64(1), body["total_services"])
	m.AssertExpectations(t)
}

func TestCreateBooking_MultipartImages(t *testing.T) {
	m := &mockBookings{}
	salonID := uuid.New()
	m.On("Create", mock.Anything, testActor, salonID, mock.MatchedBy(func(in services.BookingInput) bool {
		return len(in.Images) == 2 && in.BookingTime == "09:00"
	})).Return(sampleView(), nil).Once()

	w := doMultipart(t, bookingRouter(m), http.MethodPost, "/api/salons/"+salonID.String()+"/bookings",
		gin.H{"customer": gin.H{"phone": "+15551234567"}, "booking_date": "2026-03-14", "booking_time": "09:00"},
		map[string][]byte{"a.png": []byte("a"), "b.png": []byte("b")},
	)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	m.AssertExpectations(t)
}

func TestCreateBooking_TooManyImages(t *testing.T) {
	m := &mockBookings{}
	salonID := uuid.New()

	w := doMultipart(t, bookingRouter(m), http.MethodPost, "/api/salons/"+salonID.String()+"/bookings",
		gin.H{"customer": gin.H{"phone": "+15551234567"}, "booking_date": "2026-03-14", "booking_time": "09:00"},
		map[string][]byte{"a.png": []byte("a"), "b.png": []byte("b"), "c.png": []byte("c"), "d.png": []byte("d")},
	)

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Contains(t, body["fields"], "images")
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_BadInput(t *testing.T) {
	m := &mockBookings{}
	r := bookingRouter(m)

	w := doJSON(t, r, http.MethodPost, "/api/salons/not-a-uuid/bookings", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/salons/"+uuid.NewString()+"/bookings", gin.H{
		"booking_date": "14/03/2026",
		"booking_time": "10:30",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/salons/"+uuid.NewString()+"/bookings", gin.H{"booking_time": "10:30"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "booking_date is required")

	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBooking_CollectionSignals(t *testing.T) {
	m := &mockBookings{}
	id := uuid.New()
	m.On("Update", mock.Anything, testActor, id, mock.MatchedBy(func(p services.BookingPatch) bool {
		return p.ServiceIDs != nil && len(*p.ServiceIDs) == 0 &&
			p.ProductIDs == nil &&
			p.Status != nil && *p.Status == models.BookingCancelled &&
			p.CancellationReason != nil && *p.CancellationReason == "ill"
	})).Return(sampleView(), nil).Once()

	w := doJSON(t, bookingRouter(m), http.MethodPatch, "/api/bookings/"+id.String(), gin.H{
		"services":            []string{},
		"status":              "CANCELLED",
		"cancellation_reason": "ill",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	m.AssertExpectations(t)
}

func TestUpdateBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.Validation("cancellation_reason", "is required when cancelling a booking"), http.StatusBadRequest},
		{"not found", apperrors.NotFound("booking"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("customer", "phone"), http.StatusConflict},
		{"state", apperrors.State("a completed booking cannot be cancelled"), http.StatusUnprocessableEntity},
		{"store", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockBookings{}
			m.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := doJSON(t, bookingRouter(m), http.MethodPatch, "/api/bookings/"+uuid.NewString(), gin.H{"status": "CANCELLED"})
			assert.Equal(t, tt.status, w.Code)
		})
	}

	m := &mockBookings{}
	m.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.Validation("cancellation_reason", "is required when cancelling a booking")).Once()
	w := doJSON(t, bookingRouter(m), http.MethodPatch, "/api/bookings/"+uuid.NewString(), gin.H{"status": "CANCELLED"})
	body := decode(t, w)
	fields, _ := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "cancellation_reason")
}

func TestGetReceipt(t *testing.T) {
	id := uuid.New()

	m := &mockBookings{}
	m.On("RenderReceipt", mock.Anything, testActor, id).Return([]byte("RECEIPT"), "text/plain; charset=utf-8", nil).Once()
	w := doJSON(t, bookingRouter(m), http.MethodGet, "/api/bookings/"+id.String()+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RECEIPT", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	m = &mockBookings{}
	m.On("Receipt", mock.Anything, testActor, id).Return(nil, apperrors.State("receipt is only available for completed bookings")).Once()
	w = doJSON(t, bookingRouter(m), http.MethodGet, "/api/bookings/"+id.String()+"/receipt?format=json", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetBookings_Filters(t *testing.T) {
	m := &mockBookings{}
	salonID := uuid.New()
	m.On("List", mock.Anything, testActor, mock.MatchedBy(func(f services.BookingFilter) bool {
		return f.SalonID != nil && *f.SalonID == salonID &&
			f.Status == models.BookingPlaced &&
			f.From != nil && f.From.Day() == 1 && f.To == nil
	})).Return([]*services.BookingView{sampleView()}, nil).Once()

	r := bookingRouter(m)
	w := doJSON(t, r, http.MethodGet, "/api/bookings?salon_id="+salonID.String()+"&status=PLACED&from=2026-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	m.AssertExpectations(t)

	w = doJSON(t, r, http.MethodGet, "/api/bookings?salon_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingRoutes_RequireIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/bookings/:id", NewBookingController(&mockBookings{}).GetBooking)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
