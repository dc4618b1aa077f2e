// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type ReminderLog struct {
	Base
	AccountID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookingID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Type         string    `gorm:"type:varchar(20)"` // confirmation, reminder
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt       time.Time
}
