package generalslot

import (
	"net/http"
	"time"

	"github.com/meishi-app/meishi-backend/internal/pkg/apperror"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "general time slot not found")
	ErrInvalidWeekday   = apperror.New(http.StatusBadRequest, "weekday must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidInterval  = apperror.New(http.StatusBadRequest, "interval must be positive and cannot exceed the total time range")
	ErrMinExceedsMax    = apperror.New(http.StatusBadRequest, "minimum people per booking cannot exceed maximum")
	ErrInvalidCapacity  = apperror.New(http.StatusBadRequest, "capacity values must be positive")
	ErrOverlap          = apperror.New(http.StatusConflict, "time slots cannot overlap with existing slots")
)

// GeneralTimeSlot is a recurring weekly availability rule. The generator
// materializes it into concrete time slots over the rolling horizon.
type GeneralTimeSlot struct {
	ID              int64
	BookingSystemID int64
	Weekday         int // 0 = Monday ... 6 = Sunday
	StartTime       daytime.Time
	EndTime         daytime.Time
	IntervalMinutes int
	MaxPeople       int
	MaxTables       int
	MinPerBooking   int
	MaxPerBooking   int
	CreatedAt       time.Time
}

// Validate checks the rule's internal invariants.
func (g *GeneralTimeSlot) Validate() error {
	if g.Weekday < 0 || g.Weekday > 6 {
		return ErrInvalidWeekday
	}
	if !g.StartTime.Valid() || !g.EndTime.Valid() || g.StartTime >= g.EndTime {
		return ErrInvalidTimeRange
	}
	if g.IntervalMinutes <= 0 || g.IntervalMinutes > g.EndTime.Sub(g.StartTime) {
		return ErrInvalidInterval
	}
	if g.MaxPeople <= 0 || g.MaxTables <= 0 || g.MinPerBooking <= 0 || g.MaxPerBooking <= 0 {
		return ErrInvalidCapacity
	}
	if g.MinPerBooking > g.MaxPerBooking {
		return ErrMinExceedsMax
	}
	return nil
}

// OverlapsWith reports whether two rules on the same booking system and
// weekday have intersecting [start, end) windows. Adjacent windows
// (end == start) do not overlap.
func (g *GeneralTimeSlot) OverlapsWith(other *GeneralTimeSlot) bool {
	if g.BookingSystemID != other.BookingSystemID || g.Weekday != other.Weekday {
		return false
	}
	return g.StartTime < other.EndTime && other.StartTime < g.EndTime
}
