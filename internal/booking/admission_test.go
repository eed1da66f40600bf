package booking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

func openSlot() *timeslot.TimeSlot {
	return &timeslot.TimeSlot{
		ID:            1,
		IsOpen:        true,
		MaxPeople:     18,
		MaxTables:     4,
		MinPerBooking: 2,
		MaxPerBooking: 8,
	}
}

func TestAdmit(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *timeslot.TimeSlot)
		paused  bool
		people  int
		usage   SlotUsage
		wantErr error
	}{
		{name: "empty slot admits a valid party", people: 4},
		{name: "party below minimum", people: 1, wantErr: ErrPartyTooSmall},
		{name: "party above maximum", people: 9, wantErr: ErrPartyTooLarge},
		{
			name:    "closed slot",
			mutate:  func(s *timeslot.TimeSlot) { s.IsOpen = false },
			people:  4,
			wantErr: ErrSlotClosed,
		},
		{name: "paused system", paused: true, people: 4, wantErr: ErrSystemPaused},
		{
			name:   "fills people capacity exactly",
			people: 6,
			usage:  SlotUsage{People: 12, Tables: 2},
		},
		{
			name:    "exceeds people capacity by one",
			people:  7,
			usage:   SlotUsage{People: 12, Tables: 2},
			wantErr: ErrNoPeopleCapacity,
		},
		{
			name:   "takes the last table",
			people: 2,
			usage:  SlotUsage{People: 6, Tables: 3},
		},
		{
			name:    "no tables left",
			people:  2,
			usage:   SlotUsage{People: 8, Tables: 4},
			wantErr: ErrNoTablesLeft,
		},
		{
			name:    "party bounds checked before capacity",
			people:  1,
			usage:   SlotUsage{People: 18, Tables: 4},
			wantErr: ErrPartyTooSmall,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slot := openSlot()
			if tc.mutate != nil {
				tc.mutate(slot)
			}

			err := Admit(slot, tc.paused, tc.people, tc.usage)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Simulate a stream of booking attempts against one slot and check the
// aggregate invariants hold no matter the order of party sizes.
func TestAdmitSequenceNeverOverfills(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		slot := openSlot()
		slot.MaxPeople = 5 + rng.Intn(30)
		slot.MaxTables = 1 + rng.Intn(6)
		slot.MinPerBooking = 1 + rng.Intn(3)
		slot.MaxPerBooking = slot.MinPerBooking + rng.Intn(8)

		var usage SlotUsage
		for attempt := 0; attempt < 25; attempt++ {
			people := 1 + rng.Intn(12)
			if err := Admit(slot, false, people, usage); err != nil {
				continue
			}
			usage.People += people
			usage.Tables++

			require.LessOrEqual(t, usage.People, slot.MaxPeople)
			require.LessOrEqual(t, usage.Tables, slot.MaxTables)
		}
	}
}

func TestAdmitExcludingCanceled(t *testing.T) {
	// Canceled bookings are already excluded from the usage the caller
	// aggregates, so a slot that was full frees up on cancellation.
	slot := openSlot()

	full := SlotUsage{People: 16, Tables: 4}
	assert.ErrorIs(t, Admit(slot, false, 4, full), ErrNoPeopleCapacity)

	afterCancel := SlotUsage{People: 12, Tables: 3}
	assert.NoError(t, Admit(slot, false, 4, afterCancel))
}
