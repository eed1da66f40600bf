package slotgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meishi-app/meishi-backend/internal/generalslot"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func mondayRule() *generalslot.GeneralTimeSlot {
	return &generalslot.GeneralTimeSlot{
		ID:              7,
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

func TestTimesOf(t *testing.T) {
	keys := TimesOf(mondayRule(), monday)

	// 10:00 through 12:00 inclusive, every 30 minutes.
	require.Len(t, keys, 5)
	want := []daytime.Time{
		daytime.Time(10 * 60),
		daytime.Time(10*60 + 30),
		daytime.Time(11 * 60),
		daytime.Time(11*60 + 30),
		daytime.Time(12 * 60),
	}
	for i, key := range keys {
		assert.Equal(t, monday, key.Date)
		assert.Equal(t, want[i], key.Time)
	}
}

func TestTimesOfUnevenInterval(t *testing.T) {
	rule := mondayRule()
	rule.IntervalMinutes = 45

	keys := TimesOf(rule, monday)

	// 10:00, 10:45, 11:30; 12:15 falls past the end.
	require.Len(t, keys, 3)
	assert.Equal(t, daytime.Time(11*60+30), keys[2].Time)
}

func TestPlan(t *testing.T) {
	t.Run("covers each matching weekday in the horizon", func(t *testing.T) {
		keys := Plan(mondayRule(), monday, 30)

		// Days 0..29 starting on a Monday contain five Mondays.
		require.Len(t, keys, 5*5)
		assert.Equal(t, monday, keys[0].Date)
		assert.Equal(t, monday.AddDate(0, 0, 28), keys[len(keys)-1].Date)
		for _, key := range keys {
			assert.Equal(t, 0, daytime.WeekdayOf(key.Date))
		}
	})

	t.Run("excludes the boundary day", func(t *testing.T) {
		// today+horizon belongs to the daily advance, not full generation.
		keys := Plan(mondayRule(), monday, 7)

		require.Len(t, keys, 5)
		for _, key := range keys {
			assert.Equal(t, monday, key.Date)
		}

		for _, key := range Plan(mondayRule(), monday, 30) {
			assert.True(t, key.Date.Before(monday.AddDate(0, 0, 30)),
				"slot on %s is outside the window", daytime.FormatDate(key.Date))
		}
	})

	t.Run("starting mid-week skips to the first matching day", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		keys := Plan(mondayRule(), tuesday, 7)

		// Only the next Monday falls within tuesday..tuesday+7 exclusive.
		require.Len(t, keys, 5)
		assert.Equal(t, monday.AddDate(0, 0, 7), keys[0].Date)
	})

	t.Run("truncates the reference time to its date", func(t *testing.T) {
		lateMonday := monday.Add(23 * time.Hour)
		assert.Equal(t, Plan(mondayRule(), monday, 14), Plan(mondayRule(), lateMonday, 14))
	})
}

func TestReconcile(t *testing.T) {
	ten := daytime.Time(10 * 60)
	eleven := daytime.Time(11 * 60)

	key := func(d time.Time, tm daytime.Time) timeslot.Key {
		return timeslot.Key{Date: d, Time: tm}
	}

	t.Run("fresh rule creates everything", func(t *testing.T) {
		planned := []timeslot.Key{key(monday, ten), key(monday, eleven)}

		m := Reconcile(nil, map[timeslot.Key]int64{}, planned)

		assert.Empty(t, m.DeleteIDs)
		assert.Empty(t, m.CloseIDs)
		assert.Empty(t, m.AttachIDs)
		assert.Equal(t, planned, m.Create)
	})

	t.Run("empty attached slots are deleted and recreated", func(t *testing.T) {
		attached := []timeslot.State{
			{ID: 1, Key: key(monday, ten)},
			{ID: 2, Key: key(monday, eleven)},
		}
		existing := map[timeslot.Key]int64{
			key(monday, ten):    1,
			key(monday, eleven): 2,
		}
		planned := []timeslot.Key{key(monday, ten), key(monday, eleven)}

		m := Reconcile(attached, existing, planned)

		assert.ElementsMatch(t, []int64{1, 2}, m.DeleteIDs)
		assert.Empty(t, m.CloseIDs)
		assert.Empty(t, m.AttachIDs)
		assert.Equal(t, planned, m.Create)
	})

	t.Run("booked slot still covered is closed then re-attached", func(t *testing.T) {
		attached := []timeslot.State{
			{ID: 1, Key: key(monday, ten), HasBookings: true},
		}
		existing := map[timeslot.Key]int64{key(monday, ten): 1}
		planned := []timeslot.Key{key(monday, ten), key(monday, eleven)}

		m := Reconcile(attached, existing, planned)

		assert.Empty(t, m.DeleteIDs)
		assert.Equal(t, []int64{1}, m.CloseIDs)
		assert.Equal(t, []int64{1}, m.AttachIDs)
		assert.Equal(t, []timeslot.Key{key(monday, eleven)}, m.Create)
	})

	t.Run("booked slot no longer covered stays closed", func(t *testing.T) {
		attached := []timeslot.State{
			{ID: 1, Key: key(monday, ten), HasBookings: true},
		}
		existing := map[timeslot.Key]int64{key(monday, ten): 1}
		planned := []timeslot.Key{key(monday, eleven)}

		m := Reconcile(attached, existing, planned)

		assert.Equal(t, []int64{1}, m.CloseIDs)
		assert.Empty(t, m.AttachIDs)
		assert.Equal(t, planned, m.Create)
	})

	t.Run("rule deletion tears down without regenerating", func(t *testing.T) {
		attached := []timeslot.State{
			{ID: 1, Key: key(monday, ten)},
			{ID: 2, Key: key(monday, eleven), HasBookings: true},
		}

		m := Reconcile(attached, map[timeslot.Key]int64{}, nil)

		assert.Equal(t, []int64{1}, m.DeleteIDs)
		assert.Equal(t, []int64{2}, m.CloseIDs)
		assert.Empty(t, m.AttachIDs)
		assert.Empty(t, m.Create)
	})

	t.Run("adopts unattached slot at a planned key", func(t *testing.T) {
		// A slot left behind by a deleted rule, or created ad hoc.
		existing := map[timeslot.Key]int64{key(monday, ten): 9}
		planned := []timeslot.Key{key(monday, ten)}

		m := Reconcile(nil, existing, planned)

		assert.Equal(t, []int64{9}, m.AttachIDs)
		assert.Empty(t, m.Create)
	})
}
