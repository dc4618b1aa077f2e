package models

import "github.com/google/uuid"

const (
	OwnerBookings       = "bookings"
	OwnerServices       = "services"
	OwnerProducts       = "products"
	OwnerSupportTickets = "support_tickets"
)

// Image limits per owning entity.
const (
	MaxBookingImages = 3
	MaxCatalogImages = 2
	MaxTicketImages  = 3
)

// ImageOwner is implemented by every entity that carries an image gallery.
type ImageOwner interface {
	ImageOwner() (ownerType string, ownerID uuid.UUID)
}

// Media is one stored image attached to an owner row.
type Media struct {
	Base
	AccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	OwnerType string    `gorm:"type:varchar(32);index:idx_media_owner,priority:1;not null" json:"-"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index:idx_media_owner,priority:2;not null" json:"-"`
	Ref       string    `gorm:"not null" json:"ref"`
	URL       string    `json:"url"`
}
