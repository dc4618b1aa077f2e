package models

import (
	"github.com/google/uuid"
)

type CustomerType string

const (
	CustomerTypeLead     CustomerType = "LEAD"
	CustomerTypeCustomer CustomerType = "CUSTOMER"
)

// Customer identity is the phone number within the owning account.
// SalonID records where the customer was first seen; it is not part of the key.
type Customer struct {
	Base
	AccountID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_account_phone,priority:1" json:"account_id"`
	SalonID   *uuid.UUID `gorm:"type:uuid;index" json:"salon_id,omitempty"`

	FirstName string       `gorm:"not null" json:"first_name"`
	LastName  string       `json:"last_name"`
	Phone     string       `gorm:"not null;uniqueIndex:idx_account_phone,priority:2" json:"phone"`
	Email     string       `json:"email"`
	Type      CustomerType `gorm:"type:varchar(20);default:'CUSTOMER'" json:"type"`
	Notes     string       `json:"notes"`
	IsActive  bool         `gorm:"default:true" json:"is_active"`

	SourceID *uuid.UUID `gorm:"type:uuid;index" json:"source_id,omitempty"`
	Source   *Category  `gorm:"foreignKey:SourceID" json:"source,omitempty"`
}

func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
