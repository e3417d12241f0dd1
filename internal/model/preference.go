package model

import (
	"time"

	"github.com/google/uuid"
)

// MealType is the fixed set of meal categories a user can default to.
type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnack     MealType = "Snack"
)

// MealTypes lists every valid meal type in display order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

// Valid reports whether t is one of the known meal types.
func (t MealType) Valid() bool {
	for _, mt := range MealTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// Preference holds one user's settings. There is at most one per user.
type Preference struct {
	ID              uuid.UUID `json:"-" db:"id"`
	UserID          string    `json:"-" db:"user_id"`
	DefaultMealType MealType  `json:"defaultMealType" db:"default_meal_type"`
	DietaryTags     []string  `json:"dietaryTags" db:"dietary_tags"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// PreferenceRequest is the submission shape for saving preferences.
// DietaryTags is the raw comma separated input.
type PreferenceRequest struct {
	DefaultMealType string `json:"defaultMealType"`
	DietaryTags     string `json:"dietaryTags"`
}

// PreferenceResponse is returned when reading preferences. Exists is false
// when the user has never saved any and defaults are shown instead.
type PreferenceResponse struct {
	DefaultMealType MealType `json:"defaultMealType"`
	DietaryTags     []string `json:"dietaryTags"`
	Exists          bool     `json:"exists"`
}

// ProfileView is the materialized profile page data.
type ProfileView struct {
	Email      string             `json:"email"`
	Preference PreferenceResponse `json:"preference"`
}
