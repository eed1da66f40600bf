package bookingsystem

import (
	"net/http"
	"time"

	"github.com/meishi-app/meishi-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking system not found")
	ErrDuplicateMealType = apperror.New(http.StatusConflict, "a booking system for this meal type already exists")
	ErrInvalidMealType   = apperror.New(http.StatusBadRequest, "invalid meal type")
	ErrTypeNotFound      = apperror.New(http.StatusNotFound, "booking type not found")
	ErrDuplicateTypeName = apperror.New(http.StatusConflict, "a booking type with this name already exists")
	ErrTypeNameRequired  = apperror.New(http.StatusBadRequest, "booking type name is required")
)

// MealType identifies the service a booking system schedules.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealBrunch    MealType = "brunch"
	MealGeneral   MealType = "general"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealBrunch, MealGeneral:
		return true
	}
	return false
}

// BookingSystem is the scheduling context for one restaurant and meal type.
// Each restaurant can have at most one system per meal type.
type BookingSystem struct {
	ID           int64
	RestaurantID int64
	MealType     MealType
	IsPaused     bool
	CreatedAt    time.Time
}

// BookingType is a descriptive label scoped to one booking system
// (e.g. "à la carte", "omakase"). Bookings reference it by name only.
type BookingType struct {
	ID              int64
	BookingSystemID int64
	Name            string
}
