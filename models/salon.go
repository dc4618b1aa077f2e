package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type Salon struct {
	Base
	AccountID    uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	Name         string    `gorm:"not null" json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	OpeningHours JSONB     `gorm:"type:jsonb" json:"opening_hours"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	Services  []Service  `gorm:"foreignKey:SalonID" json:"-"`
	Products  []Product  `gorm:"foreignKey:SalonID" json:"-"`
	Employees []Employee `gorm:"foreignKey:SalonID" json:"-"`
	Chairs    []Chair    `gorm:"foreignKey:SalonID" json:"-"`
}

// DefaultOpeningHours is applied to salons created without explicit hours.
func DefaultOpeningHours() JSONB {
	return JSONB{
		"monday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"tuesday":   map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"wednesday": map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"thursday":  map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"friday":    map[string]interface{}{"open": "09:00", "close": "20:00", "closed": false},
		"saturday":  map[string]interface{}{"open": "09:00", "close": "21:00", "closed": false},
		"sunday":    map[string]interface{}{"open": "10:00", "close": "19:00", "closed": true},
	}
}

// Custom JSONB type for opening hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
}
