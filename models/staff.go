package models

import "github.com/google/uuid"

type Employee struct {
	Base
	AccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	DesignationID *uuid.UUID `gorm:"type:uuid;index" json:"designation_id,omitempty"`
	Designation   *Category  `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
}

type Chair struct {
	Base
	AccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Name      string    `gorm:"not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	ChairTypeID *uuid.UUID `gorm:"type:uuid;index" json:"chair_type_id,omitempty"`
	ChairType   *Category  `gorm:"foreignKey:ChairTypeID" json:"chair_type,omitempty"`
}
