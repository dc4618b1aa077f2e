package models

import "github.com/google/uuid"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

type SupportTicket struct {
	Base
	AccountID   uuid.UUID    `gorm:"type:uuid;index;not null" json:"account_id"`
	CreatedByID uuid.UUID    `gorm:"type:uuid;not null" json:"created_by"`
	Subject     string       `gorm:"not null" json:"subject"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TicketStatus `gorm:"type:varchar(20);default:'OPEN'" json:"status"`

	Images []Media `gorm:"polymorphic:Owner;polymorphicValue:support_tickets" json:"images"`
}

func (t *SupportTicket) ImageOwner() (string, uuid.UUID) { return OwnerSupportTickets, t.ID }
