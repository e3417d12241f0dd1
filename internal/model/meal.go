package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used in routes and forms.
const DateLayout = "2006-01-02"

// TimeLayout is the clock format produced by the time picker.
const TimeLayout = "15:04"

// Meal represents one logged eating event.
type Meal struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      string    `json:"-" db:"user_id"`
	Description string    `json:"description" db:"description"`
	Quantity    *string   `json:"quantity,omitempty" db:"quantity"`
	ConsumedAt  time.Time `json:"consumedAt" db:"consumed_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// MealRequest is the submission shape for creating or editing a meal.
// Date accepts either YYYY-MM-DD or an RFC 3339 instant; Time is HH:mm.
// A non-empty ID turns a create submission into an edit.
type MealRequest struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Quantity    *string `json:"quantity,omitempty"`
	Date        string  `json:"date,omitempty"`
	Time        string  `json:"time,omitempty"`
}

// DayView is the materialized listing for a single calendar day.
type DayView struct {
	Date  string `json:"date"`
	Prev  string `json:"prev"`
	Next  string `json:"next"`
	Meals []Meal `json:"meals"`
}
