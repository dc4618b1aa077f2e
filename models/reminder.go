package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TemplateConfirmation = "confirmation"
	TemplateReminder     = "reminder"
)

// ReminderTemplate is the WhatsApp/SMS message an account sends for a booking event.
// Placeholders: [CustomerName] [SalonName] [Date] [Time].
type ReminderTemplate struct {
	Base
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_template_account_type,priority:1" json:"account_id"`
	Type      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_template_account_type,priority:2" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

// DefaultReminderTemplates are used when an account has not configured its own.
var DefaultReminderTemplates = map[string]string{
	TemplateConfirmation: "Hi [CustomerName], your appointment at [SalonName] is booked for [Date] at [Time]. See you soon!",
	TemplateReminder:     "Hi [CustomerName], a reminder of your appointment at [SalonName] on [Date] at [Time].",
}

// RenderTemplate fills the template placeholders for a booking.
func RenderTemplate(message string, customerName, salonName string, date time.Time, clock string) string {
	r := strings.NewReplacer(
		"[CustomerName]", customerName,
		"[SalonName]", salonName,
		"[Date]", date.Format("02 Jan 2006"),
		"[Time]", clock,
	)
	return r.Replace(message)
}
