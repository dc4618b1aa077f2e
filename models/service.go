package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// FinalPrice applies a discount percentage to a base price. A missing
// discount leaves the price untouched. The result is rounded to cents.
func FinalPrice(price decimal.Decimal, discountPercentage decimal.NullDecimal) decimal.Decimal {
	if !discountPercentage.Valid {
		return price.Round(2)
	}
	factor := hundred.Sub(discountPercentage.Decimal).Div(hundred)
	return price.Mul(factor).Round(2)
}

type Service struct {
	Base
	AccountID   uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`

	Price              decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPercentage decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"discount_percentage"`
	Duration           int                 `json:"duration"` // in minutes

	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category      *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID *uuid.UUID `gorm:"type:uuid;index" json:"sub_category_id,omitempty"`
	SubCategory   *Category  `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`

	Images []Media `gorm:"polymorphic:Owner;polymorphicValue:services" json:"images,omitempty"`

	DiscountedPrice decimal.Decimal `gorm:"-" json:"final_price"`
}

func (s Service) FinalPrice() decimal.Decimal {
	return FinalPrice(s.Price, s.DiscountPercentage)
}

func (s *Service) AfterFind(tx *gorm.DB) error {
	s.DiscountedPrice = s.FinalPrice()
	return nil
}

func (s *Service) AfterSave(tx *gorm.DB) error {
	s.DiscountedPrice = s.FinalPrice()
	return nil
}

func (s *Service) ImageOwner() (string, uuid.UUID) { return OwnerServices, s.ID }

// Product prices carry no discount.
type Product struct {
	Base
	AccountID   uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`

	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category      *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID *uuid.UUID `gorm:"type:uuid;index" json:"sub_category_id,omitempty"`
	SubCategory   *Category  `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`

	Images []Media `gorm:"polymorphic:Owner;polymorphicValue:products" json:"images,omitempty"`
}

func (p *Product) ImageOwner() (string, uuid.UUID) { return OwnerProducts, p.ID }
