package generalslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

func validRule() *GeneralTimeSlot {
	return &GeneralTimeSlot{
		BookingSystemID: 1,
		Weekday:         0,
		StartTime:       daytime.Time(10 * 60),
		EndTime:         daytime.Time(12 * 60),
		IntervalMinutes: 30,
		MaxPeople:       20,
		MaxTables:       5,
		MinPerBooking:   1,
		MaxPerBooking:   8,
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid rule passes", func(t *testing.T) {
		assert.NoError(t, validRule().Validate())
	})

	t.Run("weekday out of range", func(t *testing.T) {
		g := validRule()
		g.Weekday = 7
		assert.ErrorIs(t, g.Validate(), ErrInvalidWeekday)

		g.Weekday = -1
		assert.ErrorIs(t, g.Validate(), ErrInvalidWeekday)
	})

	t.Run("start must precede end", func(t *testing.T) {
		g := validRule()
		g.StartTime = g.EndTime
		assert.ErrorIs(t, g.Validate(), ErrInvalidTimeRange)

		g.StartTime = g.EndTime + 60
		assert.ErrorIs(t, g.Validate(), ErrInvalidTimeRange)
	})

	t.Run("interval bounds", func(t *testing.T) {
		g := validRule()
		g.IntervalMinutes = 0
		assert.ErrorIs(t, g.Validate(), ErrInvalidInterval)

		g = validRule()
		g.IntervalMinutes = 121 // window is 120 minutes
		assert.ErrorIs(t, g.Validate(), ErrInvalidInterval)

		g = validRule()
		g.IntervalMinutes = 120
		assert.NoError(t, g.Validate())
	})

	t.Run("capacities must be positive", func(t *testing.T) {
		g := validRule()
		g.MaxTables = 0
		assert.ErrorIs(t, g.Validate(), ErrInvalidCapacity)
	})

	t.Run("min cannot exceed max", func(t *testing.T) {
		g := validRule()
		g.MinPerBooking = 9
		g.MaxPerBooking = 8
		assert.ErrorIs(t, g.Validate(), ErrMinExceedsMax)
	})
}

func TestOverlapsWith(t *testing.T) {
	base := validRule() // Monday 10:00-12:00

	newRule := func(start, end daytime.Time, weekday int, system int64) *GeneralTimeSlot {
		g := validRule()
		g.StartTime = start
		g.EndTime = end
		g.Weekday = weekday
		g.BookingSystemID = system
		return g
	}

	t.Run("intersecting windows overlap", func(t *testing.T) {
		other := newRule(daytime.Time(11*60), daytime.Time(13*60), 0, 1)
		assert.True(t, base.OverlapsWith(other))
		assert.True(t, other.OverlapsWith(base))
	})

	t.Run("containment overlaps", func(t *testing.T) {
		other := newRule(daytime.Time(10*60+30), daytime.Time(11*60), 0, 1)
		assert.True(t, base.OverlapsWith(other))
	})

	t.Run("adjacent windows do not overlap", func(t *testing.T) {
		other := newRule(daytime.Time(12*60), daytime.Time(14*60), 0, 1)
		assert.False(t, base.OverlapsWith(other))
	})

	t.Run("different weekday never overlaps", func(t *testing.T) {
		other := newRule(daytime.Time(10*60), daytime.Time(12*60), 1, 1)
		assert.False(t, base.OverlapsWith(other))
	})

	t.Run("different system never overlaps", func(t *testing.T) {
		other := newRule(daytime.Time(10*60), daytime.Time(12*60), 0, 2)
		assert.False(t, base.OverlapsWith(other))
	})
}
