// Package slotgen materializes weekly availability rules into concrete time
// slots over a rolling horizon, and reconciles existing slots when a rule
// changes or disappears.
package slotgen

import (
	"time"

	"github.com/meishi-app/meishi-backend/internal/generalslot"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

// Plan lists the (date, time) keys a rule covers over [today,
// today+horizonDays). The boundary day is excluded; the daily horizon
// advance creates it when it enters the window. Times run from the rule's
// start through its end inclusive, stepping by the interval.
func Plan(rule *generalslot.GeneralTimeSlot, today time.Time, horizonDays int) []timeslot.Key {
	today = daytime.DateOf(today)

	var keys []timeslot.Key
	for offset := 0; offset < horizonDays; offset++ {
		date := today.AddDate(0, 0, offset)
		if daytime.WeekdayOf(date) != rule.Weekday {
			continue
		}
		keys = append(keys, TimesOf(rule, date)...)
	}
	return keys
}

// TimesOf expands a rule into keys for a single date. The date is assumed to
// fall on the rule's weekday.
func TimesOf(rule *generalslot.GeneralTimeSlot, date time.Time) []timeslot.Key {
	date = daytime.DateOf(date)

	var keys []timeslot.Key
	for t := rule.StartTime; t <= rule.EndTime; t = t.Add(rule.IntervalMinutes) {
		keys = append(keys, timeslot.Key{Date: date, Time: t})
	}
	return keys
}

// Mutations is the set of slot changes that realigns a booking system's slots
// with a rule. Applied in order: deletes, closes, attaches, creates.
type Mutations struct {
	// DeleteIDs are attached slots without bookings. They are removed outright.
	DeleteIDs []int64
	// CloseIDs are attached slots that hold bookings. They cannot be removed,
	// so they are closed to further booking instead.
	CloseIDs []int64
	// AttachIDs are surviving slots whose key the rule still (or newly)
	// covers. They are pointed at the rule and reopened.
	AttachIDs []int64
	// Create are keys the rule covers with no existing slot.
	Create []timeslot.Key
}

// Reconcile computes the slot changes for a rule transition. attached holds
// the slots currently pointing at the rule; existingByKey indexes every slot
// of the booking system within the horizon. planned is the rule's new
// coverage, nil when the rule is being deleted.
//
// Attached slots are torn down first: empty ones deleted, booked ones closed.
// A booked slot whose key the new rule still covers is then re-attached and
// reopened, keeping its bookings intact.
func Reconcile(attached []timeslot.State, existingByKey map[timeslot.Key]int64, planned []timeslot.Key) Mutations {
	var m Mutations

	deleted := make(map[int64]bool)
	for _, s := range attached {
		if s.HasBookings {
			m.CloseIDs = append(m.CloseIDs, s.ID)
		} else {
			m.DeleteIDs = append(m.DeleteIDs, s.ID)
			deleted[s.ID] = true
		}
	}

	for _, key := range planned {
		if id, ok := existingByKey[key]; ok && !deleted[id] {
			m.AttachIDs = append(m.AttachIDs, id)
		} else {
			m.Create = append(m.Create, key)
		}
	}
	return m
}
