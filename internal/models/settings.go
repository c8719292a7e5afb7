package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietaryPreference is the user's dietary preference. Only the two values
// below are accepted; anything else is rejected at input validation.
type DietaryPreference string

const (
	VegetarianEggless DietaryPreference = "vegetarian-eggless"
	NonVegetarian     DietaryPreference = "non-vegetarian"
)

func (p DietaryPreference) Validate() error {
	switch p {
	case VegetarianEggless, NonVegetarian:
		return nil
	}
	return fmt.Errorf("invalid dietary preference: %q", string(p))
}

// UserSettings holds per-user goals and AI preferences. One row per user.
type UserSettings struct {
	ID                uuid.UUID         `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID         `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	ProteinGoal       float64           `gorm:"not null;default:0" json:"protein_goal"`
	DietaryPreference DietaryPreference `gorm:"size:50;not null" json:"dietary_preference"`
	AIModel           string            `gorm:"size:100" json:"ai_model,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
