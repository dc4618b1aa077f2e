package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPlaced      BookingStatus = "PLACED"
	BookingInProgress  BookingStatus = "INPROGRESS"
	BookingCompleted   BookingStatus = "COMPLETED"
	BookingRescheduled BookingStatus = "RESCHEDULED"
	BookingCancelled   BookingStatus = "CANCELLED"
	BookingAbsent      BookingStatus = "ABSENT"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPlaced, BookingInProgress, BookingCompleted, BookingRescheduled, BookingCancelled, BookingAbsent:
		return true
	}
	return false
}

type Booking struct {
	Base
	AccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Salon     *Salon    `gorm:"foreignKey:SalonID" json:"-"`

	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	Employee   *Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ChairID    *uuid.UUID `gorm:"type:uuid;index" json:"chair_id,omitempty"`
	Chair      *Chair     `gorm:"foreignKey:ChairID" json:"chair,omitempty"`

	BookingDate     time.Time     `gorm:"type:date;index;not null" json:"booking_date"`
	BookingTime     string        `gorm:"type:varchar(5);not null" json:"booking_time"` // HH:MM
	BookingDuration int           `gorm:"default:0" json:"booking_duration"`            // in minutes
	Status          BookingStatus `gorm:"type:varchar(20);index;default:'PLACED'" json:"status"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledByID      *uuid.UUID `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	TipsAmount  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"tips_amount"`
	PaymentType string          `gorm:"type:varchar(20)" json:"payment_type"`
	Notes       string          `json:"notes"`

	Services []Service `gorm:"many2many:booking_services;" json:"services"`
	Products []Product `gorm:"many2many:booking_products;" json:"products"`
	Images   []Media   `gorm:"polymorphic:Owner;polymorphicValue:bookings" json:"images"`
}

func (b *Booking) ImageOwner() (string, uuid.UUID) { return OwnerBookings, b.ID }

// TotalDuration sums the durations of the given services in minutes.
func TotalDuration(services []Service) int {
	total := 0
	for _, s := range services {
		total += s.Duration
	}
	return total
}
