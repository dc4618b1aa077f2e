package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"salonbook-backend/apperrors"
	"salonbook-backend/events"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingInput is a new booking request for one salon.
type BookingInput struct {
	Customer    ContactInput
	Source      string
	ServiceIDs  []uuid.UUID
	ProductIDs  []uuid.UUID
	EmployeeID  *uuid.UUID
	ChairID     *uuid.UUID
	BookingDate time.Time
	BookingTime string
	Status      models.BookingStatus
	TipsAmount  decimal.Decimal
	PaymentType string
	Notes       string
	Images      []ImageUpload
}

// BookingPatch changes an existing booking. A nil field is left unchanged.
// ServiceIDs and ProductIDs replace the whole set when non-nil, so a pointer
// to an empty slice clears it. Images replace the gallery when non-empty.
// EmployeeID or ChairID set to uuid.Nil unassigns.
type BookingPatch struct {
	Customer           *CustomerPatch
	ServiceIDs         *[]uuid.UUID
	ProductIDs         *[]uuid.UUID
	EmployeeID         *uuid.UUID
	ChairID            *uuid.UUID
	BookingDate        *time.Time
	BookingTime        *string
	Status             *models.BookingStatus
	CancellationReason *string
	TipsAmount         *decimal.Decimal
	PaymentType        *string
	Notes              *string
	Images             []ImageUpload
}

type BookingFilter struct {
	SalonID    *uuid.UUID
	CustomerID *uuid.UUID
	Status     models.BookingStatus
	From       *time.Time
	To         *time.Time
}

// BookingNotifier sends the customer a confirmation for a new booking.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) error
}

type BookingDeps struct {
	Customers *CustomerService
	Images    ImageStore
	Publisher events.Publisher
	Notifier  BookingNotifier
	Renderer  ReceiptRenderer
}

type BookingService struct {
	db        *gorm.DB
	customers *CustomerService
	gallery   gallery
	publisher events.Publisher
	notifier  BookingNotifier
	renderer  ReceiptRenderer
	now       func() time.Time
}

func NewBookingService(db *gorm.DB, deps BookingDeps) *BookingService {
	s := &BookingService{
		db:        db,
		customers: deps.Customers,
		gallery:   gallery{store: deps.Images},
		publisher: deps.Publisher,
		notifier:  deps.Notifier,
		renderer:  deps.Renderer,
		now:       time.Now,
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.renderer == nil {
		s.renderer = TextReceiptRenderer{}
	}
	return s
}

// Create resolves the customer, attaches services and products, and stores
// the booking with its images in one transaction.
func (s *BookingService) Create(ctx context.Context, actor Actor, salonID uuid.UUID, in BookingInput) (*BookingView, error) {
	if err := validateBookingInput(in); err != nil {
		return nil, err
	}

	var salon models.Salon
	if err := findOwned(ctx, s.db, actor, &salon, salonID, "salon"); err != nil {
		return nil, err
	}

	refs, err := s.gallery.stage(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.BookingPlaced
	}
	booking := &models.Booking{
		AccountID:   actor.AccountID,
		SalonID:     salon.ID,
		BookingDate: utils.BeginningOfDay(in.BookingDate.UTC()),
		BookingTime: in.BookingTime,
		Status:      status,
		TipsAmount:  in.TipsAmount,
		PaymentType: strings.TrimSpace(in.PaymentType),
		Notes:       in.Notes,
	}
	if status == models.BookingCompleted {
		now := s.now()
		booking.CompletedAt = &now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.customers.WithTx(tx).Resolve(ctx, actor, ResolveCustomerInput{
			Contact: in.Customer,
			Source:  in.Source,
			SalonID: &salon.ID,
		})
		if err != nil {
			return err
		}
		booking.CustomerID = &customer.ID

		services, err := loadOwned[models.Service](tx, actor, salonID, in.ServiceIDs, "service")
		if err != nil {
			return err
		}
		products, err := loadOwned[models.Product](tx, actor, salonID, in.ProductIDs, "product")
		if err != nil {
			return err
		}
		if booking.EmployeeID, err = assign[models.Employee](tx, actor, salonID, in.EmployeeID, "employee"); err != nil {
			return err
		}
		if booking.ChairID, err = assign[models.Chair](tx, actor, salonID, in.ChairID, "chair"); err != nil {
			return err
		}
		booking.BookingDuration = models.TotalDuration(services)

		if err := tx.Omit(clause.Associations).Create(booking).Error; err != nil {
			return err
		}
		if err := replaceAssociation(tx, booking, "Services", services); err != nil {
			return err
		}
		if err := replaceAssociation(tx, booking, "Products", products); err != nil {
			return err
		}
		if len(refs) > 0 {
			if _, err := s.gallery.replace(tx, actor.AccountID, booking, refs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.gallery.discard(ctx, refs)
		return nil, err
	}

	utils.LoggerFromContext(ctx).Info("Booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("salon_id", salon.ID.String()),
	)

	view, err := s.Get(ctx, actor, booking.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.BookingCreated, view.Booking)
	s.confirm(ctx, view.ID)
	return view, nil
}

// Update applies patch to a booking. Customer edits, association and image
// replacement, and status changes commit or roll back together.
func (s *BookingService) Update(ctx context.Context, actor Actor, id uuid.UUID, patch BookingPatch) (*BookingView, error) {
	if err := validateBookingPatch(patch); err != nil {
		return nil, err
	}

	refs, err := s.gallery.stage(ctx, patch.Images)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	var detached []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The row stays locked until commit so overlapping updates apply in turn.
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Customer")
		if err := findOwned(ctx, locked, actor, &booking, id, "booking"); err != nil {
			return err
		}
		if err := applyStatus(&booking, patch, actor, s.now()); err != nil {
			return err
		}

		if patch.Customer != nil {
			if booking.Customer == nil {
				return apperrors.Validation("customer", "booking has no linked customer")
			}
			if err := s.customers.WithTx(tx).applyPatch(ctx, booking.Customer, *patch.Customer); err != nil {
				return err
			}
		}

		if patch.ServiceIDs != nil {
			services, err := loadOwned[models.Service](tx, actor, booking.SalonID, *patch.ServiceIDs, "service")
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &booking, "Services", services); err != nil {
				return err
			}
			booking.BookingDuration = models.TotalDuration(services)
		}
		if patch.ProductIDs != nil {
			products, err := loadOwned[models.Product](tx, actor, booking.SalonID, *patch.ProductIDs, "product")
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx, &booking, "Products", products); err != nil {
				return err
			}
		}

		var err error
		if patch.EmployeeID != nil {
			if booking.EmployeeID, err = assign[models.Employee](tx, actor, booking.SalonID, patch.EmployeeID, "employee"); err != nil {
				return err
			}
		}
		if patch.ChairID != nil {
			if booking.ChairID, err = assign[models.Chair](tx, actor, booking.SalonID, patch.ChairID, "chair"); err != nil {
				return err
			}
		}

		if patch.BookingDate != nil {
			booking.BookingDate = utils.BeginningOfDay(patch.BookingDate.UTC())
		}
		if patch.BookingTime != nil {
			booking.BookingTime = *patch.BookingTime
		}
		if patch.TipsAmount != nil {
			booking.TipsAmount = *patch.TipsAmount
		}
		if patch.PaymentType != nil {
			booking.PaymentType = strings.TrimSpace(*patch.PaymentType)
		}
		if patch.Notes != nil {
			booking.Notes = *patch.Notes
		}

		if err := tx.Omit(clause.Associations).Save(&booking).Error; err != nil {
			return err
		}

		if len(refs) > 0 {
			if detached, err = s.gallery.replace(tx, actor.AccountID, &booking, refs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.gallery.discard(ctx, refs)
		return nil, err
	}
	s.gallery.discard(ctx, detached)

	logger := utils.LoggerFromContext(ctx)
	logger.Info("Booking updated",
		slog.String("booking_id", booking.ID.String()),
		slog.String("status", string(booking.Status)),
	)

	view, err := s.Get(ctx, actor, booking.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.BookingUpdated, view.Booking)
	return view, nil
}

func (s *BookingService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error) {
	var booking models.Booking
	if err := findOwned(ctx, preloadBooking(s.db), actor, &booking, id, "booking"); err != nil {
		return nil, err
	}
	return NewBookingView(&booking), nil
}

func (s *BookingService) List(ctx context.Context, actor Actor, f BookingFilter) ([]*BookingView, error) {
	q := tenant(preloadBooking(s.db.WithContext(ctx)), actor)
	if f.SalonID != nil {
		q = q.Where("salon_id = ?", *f.SalonID)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, apperrors.Validation("status", "unrecognized booking status")
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("booking_date >= ?", utils.BeginningOfDay(f.From.UTC()))
	}
	if f.To != nil {
		_, end := utils.DayRange(f.To.UTC())
		q = q.Where("booking_date < ?", end)
	}

	var bookings []models.Booking
	if err := q.Order("booking_date DESC, booking_time DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	views := make([]*BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, NewBookingView(&bookings[i]))
	}
	return views, nil
}

// Receipt returns the line items and payable total of a completed booking.
func (s *BookingService) Receipt(ctx context.Context, actor Actor, id uuid.UUID) (*Receipt, error) {
	view, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if view.Status != models.BookingCompleted {
		return nil, apperrors.State("receipt is only available for completed bookings (status %s)", view.Status)
	}
	return newReceipt(view.Booking), nil
}

// RenderReceipt renders the receipt of a completed booking.
func (s *BookingService) RenderReceipt(ctx context.Context, actor Actor, id uuid.UUID) ([]byte, string, error) {
	receipt, err := s.Receipt(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	return s.renderer.Render(receipt)
}

func (s *BookingService) publish(ctx context.Context, actor Actor, kind string, b *models.Booking) {
	event := events.BookingEvent{
		Type:       kind,
		BookingID:  b.ID,
		AccountID:  b.AccountID,
		SalonID:    b.SalonID,
		CustomerID: b.CustomerID,
		Status:     string(b.Status),
		ActorID:    actor.UserID,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		utils.LoggerFromContext(ctx).Warn("Failed to publish booking event",
			slog.String("event", kind),
			slog.String("booking_id", b.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *BookingService) confirm(ctx context.Context, bookingID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	go func(ctx context.Context) {
		if err := s.notifier.SendBookingConfirmation(ctx, bookingID); err != nil {
			utils.LoggerFromContext(ctx).Warn("Failed to send booking confirmation",
				slog.String("booking_id", bookingID.String()),
				slog.String("error", err.Error()),
			)
		}
	}(context.WithoutCancel(ctx))
}

// applyStatus moves the booking to the requested status. Cancelling needs a
// reason and records the acting user; a completed booking cannot be cancelled.
func applyStatus(b *models.Booking, patch BookingPatch, actor Actor, now time.Time) error {
	if patch.CancellationReason != nil {
		b.CancellationReason = strings.TrimSpace(*patch.CancellationReason)
	}
	if patch.Status == nil {
		return nil
	}

	next := *patch.Status
	if b.Status == models.BookingCancelled && next != models.BookingCancelled {
		b.CancellationReason = ""
		b.CancelledByID = nil
	}
	switch next {
	case models.BookingCancelled:
		if b.Status == models.BookingCompleted {
			return apperrors.State("a completed booking cannot be cancelled")
		}
		if b.CancellationReason == "" {
			return apperrors.Validation("cancellation_reason", "is required when cancelling a booking")
		}
		userID := actor.UserID
		b.CancelledByID = &userID
	case models.BookingCompleted:
		if b.CompletedAt == nil {
			b.CompletedAt = &now
		}
	}
	b.Status = next
	return nil
}

func validateBookingInput(in BookingInput) error {
	verr := &apperrors.ValidationError{}
	if in.BookingDate.IsZero() {
		verr.Add("booking_date", "is required")
	}
	if !utils.ValidateClock(in.BookingTime) {
		verr.Add("booking_time", "must be HH:MM")
	}
	if in.Status != "" && !in.Status.Valid() {
		verr.Add("status", "unrecognized booking status")
	}
	if in.Status == models.BookingCancelled {
		verr.Add("status", "a new booking cannot be cancelled")
	}
	if in.TipsAmount.IsNegative() {
		verr.Add("tips_amount", "must not be negative")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return validateUploads(in.Images, models.MaxBookingImages)
}

func validateBookingPatch(p BookingPatch) error {
	verr := &apperrors.ValidationError{}
	if p.BookingDate != nil && p.BookingDate.IsZero() {
		verr.Add("booking_date", "is required")
	}
	if p.BookingTime != nil && !utils.ValidateClock(*p.BookingTime) {
		verr.Add("booking_time", "must be HH:MM")
	}
	if p.Status != nil && !p.Status.Valid() {
		verr.Add("status", "unrecognized booking status")
	}
	if p.TipsAmount != nil && p.TipsAmount.IsNegative() {
		verr.Add("tips_amount", "must not be negative")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return validateUploads(p.Images, models.MaxBookingImages)
}

func preloadBooking(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Salon").
		Preload("Customer").
		Preload("Employee").
		Preload("Chair").
		Preload("Services").
		Preload("Products").
		Preload("Images")
}

// bookable restricts a query to active rows of one salon.
func bookable(db *gorm.DB, salonID uuid.UUID) *gorm.DB {
	return db.Where("salon_id = ? AND is_active = ?", salonID, true)
}

// loadOwned fetches the salon's active rows for ids. Any id outside the
// account or salon, or deactivated, is reported as a missing resource.
func loadOwned[T any](tx *gorm.DB, actor Actor, salonID uuid.UUID, ids []uuid.UUID, resource string) ([]T, error) {
	ids = uniqueIDs(ids)
	rows := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return rows, nil
	}
	if err := bookable(tenant(tx, actor), salonID).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		return nil, apperrors.NotFound(resource)
	}
	return rows, nil
}

// assign checks that id names a row of the account. uuid.Nil unassigns.
func assign[T any](tx *gorm.DB, actor Actor, salonID uuid.UUID, id *uuid.UUID, resource string) (*uuid.UUID, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil
	}
	var count int64
	if err := bookable(tenant(tx.Model(new(T)), actor), salonID).Where("id = ?", *id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.NotFound(resource)
	}
	assigned := *id
	return &assigned, nil
}

// replaceAssociation swaps the whole many-to-many set named by field.
// The associated rows themselves are never written.
func replaceAssociation[T any](tx *gorm.DB, booking *models.Booking, field string, values []T) error {
	assoc := tx.Model(booking).Omit(field + ".*").Association(field)
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
