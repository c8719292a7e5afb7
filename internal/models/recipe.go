package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// RecipeIngredient is a single ingredient with its quantity, e.g.
// {"paneer", "200g", "cubed"}.
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// JSONBIngredients stores the ingredient list as a JSONB column.
type JSONBIngredients []RecipeIngredient

// Value implements the driver.Valuer interface
func (a JSONBIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBIngredients) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIngredients{}
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

// Recipe is a saved recipe. Nutritional figures are per serving; nullable
// macros follow the same missing-vs-zero convention as Meal.
type Recipe struct {
	ID            uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Description   string           `gorm:"type:text" json:"description,omitempty"`
	Ingredients   JSONBIngredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Servings      int              `gorm:"not null;default:1" json:"servings"`
	Calories      float64          `gorm:"not null" json:"calories"`
	Protein       *float64         `json:"protein,omitempty"`
	Carbohydrates *float64         `json:"carbohydrates,omitempty"`
	Fat           *float64         `json:"fat,omitempty"`
	Fiber         *float64         `json:"fiber,omitempty"`
	Embedding     pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
