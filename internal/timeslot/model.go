package timeslot

import (
	"net/http"
	"time"

	"github.com/meishi-app/meishi-backend/internal/pkg/apperror"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "time slot not found")
	ErrHasBookings       = apperror.New(http.StatusConflict, "cannot delete this time slot as it has associated bookings")
	ErrDuplicateSlot     = apperror.New(http.StatusConflict, "a time slot already exists at this date and time")
	ErrSlotsExistInRange = apperror.New(http.StatusConflict, "time slots already exist within the specified time range for this date")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "interval must be positive and cannot exceed the total time range")
	ErrInvalidCapacity   = apperror.New(http.StatusBadRequest, "capacity values must be positive")
	ErrMinExceedsMax     = apperror.New(http.StatusBadRequest, "minimum people per booking cannot exceed maximum")
)

// TimeSlot is one concrete bookable unit: a date and time of day within a
// booking system, carrying its own capacity numbers. GeneralSlotID points at
// the rule that spawned it and is nulled when that rule is deleted.
type TimeSlot struct {
	ID              int64
	BookingSystemID int64
	GeneralSlotID   *int64
	Date            time.Time
	Time            daytime.Time
	IsOpen          bool
	MaxPeople       int
	MaxTables       int
	MinPerBooking   int
	MaxPerBooking   int
	CreatedAt       time.Time
}

// Key identifies a slot within its booking system.
type Key struct {
	Date time.Time
	Time daytime.Time
}

// State is the reconciliation view of an existing slot: its key plus whether
// any booking rows reference it.
type State struct {
	ID          int64
	Key         Key
	HasBookings bool
}
