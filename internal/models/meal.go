package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Meal is one logged meal. Macro fields are nullable: a nil value means the
// model did not estimate that macro, which is distinct from an estimate of 0.
type Meal struct {
	ID            uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID        `gorm:"type:varchar(36);not null;index:idx_meals_user_date" json:"user_id"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Date          time.Time        `gorm:"not null;index:idx_meals_user_date" json:"date"`
	Description   string           `gorm:"type:text" json:"description"`
	FoodItems     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"food_items"`
	PhotoURL      string           `gorm:"size:255" json:"photo_url,omitempty"`
	Calories      float64          `gorm:"not null" json:"calories"`
	Protein       *float64         `json:"protein,omitempty"`
	Carbohydrates *float64         `json:"carbohydrates,omitempty"`
	Fat           *float64         `json:"fat,omitempty"`
	Fiber         *float64         `json:"fiber,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
