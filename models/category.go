package models

import "github.com/google/uuid"

// CategoryType is the kind of label a Category represents.
type CategoryType string

const (
	CategoryService    CategoryType = "service"
	CategoryProduct    CategoryType = "product"
	CategoryEmployee   CategoryType = "employee"
	CategoryChair      CategoryType = "chair"
	CategoryLeadSource CategoryType = "lead_source"
)

func (t CategoryType) Valid() bool {
	switch t {
	case CategoryService, CategoryProduct, CategoryEmployee, CategoryChair, CategoryLeadSource:
		return true
	}
	return false
}

// Category is a runtime-extensible label unique on (account, name, type).
// Name is always stored in its normalized form.
type Category struct {
	Base
	AccountID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_category_key,priority:1" json:"account_id"`
	Name      string       `gorm:"not null;uniqueIndex:idx_category_key,priority:2" json:"name"`
	Type      CategoryType `gorm:"column:category_type;type:varchar(20);not null;uniqueIndex:idx_category_key,priority:3" json:"category_type"`
	ParentID  *uuid.UUID   `gorm:"type:uuid;index" json:"parent_id,omitempty"`
}
