package booking

import (
	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

// SlotUsage aggregates the live bookings of a slot: canceled bookings are
// excluded, as is the booking being edited when one is.
type SlotUsage struct {
	People int
	Tables int
}

// Admit decides whether a party of the given size may take (or keep) a place
// in the slot. All five rules must hold:
//
//	the party size fits the slot's per-booking bounds,
//	the slot is open,
//	the booking system is not paused,
//	the slot's people capacity is not exceeded,
//	and a table is free.
func Admit(slot *timeslot.TimeSlot, paused bool, people int, usage SlotUsage) error {
	if people < slot.MinPerBooking {
		return ErrPartyTooSmall
	}
	if people > slot.MaxPerBooking {
		return ErrPartyTooLarge
	}
	if !slot.IsOpen {
		return ErrSlotClosed
	}
	if paused {
		return ErrSystemPaused
	}
	if usage.People+people > slot.MaxPeople {
		return ErrNoPeopleCapacity
	}
	if usage.Tables >= slot.MaxTables {
		return ErrNoTablesLeft
	}
	return nil
}
