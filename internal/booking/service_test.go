package booking

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	"github.com/meishi-app/meishi-backend/internal/db"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

type fakeSlots struct {
	timeslot.Repository

	slot *timeslot.TimeSlot
}

func (f *fakeSlots) GetByID(ctx context.Context, id int64) (*timeslot.TimeSlot, error) {
	if f.slot == nil || f.slot.ID != id {
		return nil, timeslot.ErrNotFound
	}
	copied := *f.slot
	return &copied, nil
}

func (f *fakeSlots) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*timeslot.TimeSlot, error) {
	return f.GetByID(ctx, id)
}

type fakeSys struct {
	bookingsystem.Service

	paused bool
}

func (f *fakeSys) GetByID(ctx context.Context, id int64) (*bookingsystem.BookingSystem, error) {
	return &bookingsystem.BookingSystem{ID: id, IsPaused: f.paused}, nil
}

type fakeBookings struct {
	Repository

	booking *Booking
	usage   SlotUsage
	updated []*Booking
	created []*Booking
}

func (f *fakeBookings) GetByCode(ctx context.Context, code string) (*Booking, error) {
	if f.booking == nil || f.booking.BookingCode != code {
		return nil, ErrNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookings) UsageForSlot(ctx context.Context, q db.Querier, slotID, excludeID int64) (SlotUsage, error) {
	return f.usage, nil
}

func (f *fakeBookings) Create(ctx context.Context, q db.Querier, b *Booking) error {
	b.ID = int64(len(f.created) + 1)
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookings) Update(ctx context.Context, q db.Querier, b *Booking) error {
	f.updated = append(f.updated, b)
	return nil
}

func newTestService(repo *fakeBookings, slots *fakeSlots, sys *fakeSys) *service {
	return &service{
		repo:       repo,
		slots:      slots,
		sysService: sys,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return fn(nil)
		},
	}
}

func testSlot() *timeslot.TimeSlot {
	return &timeslot.TimeSlot{
		ID:              1,
		BookingSystemID: 10,
		IsOpen:          true,
		MaxPeople:       18,
		MaxTables:       4,
		MinPerBooking:   2,
		MaxPerBooking:   8,
	}
}

func guestBooking() *Booking {
	return &Booking{
		ID:          5,
		TimeSlotID:  1,
		BookingCode: "b7a0a7e2-2f7e-4f3c-9a57-58f8e4f6a9b1",
		FirstName:   "Aki",
		People:      2,
		Status:      StatusConfirmed,
	}
}

func TestCreateChecksAdmission(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a paused system", func(t *testing.T) {
		repo := &fakeBookings{}
		svc := newTestService(repo, &fakeSlots{slot: testSlot()}, &fakeSys{paused: true})

		_, err := svc.Create(ctx, nil, CreateRequest{TimeSlotID: 1, FirstName: "Aki", People: 2})
		assert.ErrorIs(t, err, ErrSystemPaused)
		assert.Empty(t, repo.created)
	})

	t.Run("rejects a closed slot", func(t *testing.T) {
		slot := testSlot()
		slot.IsOpen = false
		repo := &fakeBookings{}
		svc := newTestService(repo, &fakeSlots{slot: slot}, &fakeSys{})

		_, err := svc.Create(ctx, nil, CreateRequest{TimeSlotID: 1, FirstName: "Aki", People: 2})
		assert.ErrorIs(t, err, ErrSlotClosed)
	})

	t.Run("admits into an open slot", func(t *testing.T) {
		repo := &fakeBookings{usage: SlotUsage{People: 10, Tables: 2}}
		svc := newTestService(repo, &fakeSlots{slot: testSlot()}, &fakeSys{})

		b, err := svc.Create(ctx, nil, CreateRequest{TimeSlotID: 1, FirstName: "Aki", People: 4})
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, b.Status)
		assert.Len(t, repo.created, 1)
	})
}

// A party-size change must pass the same five admission rules as a fresh
// booking, not just the capacity arithmetic.
func TestUpdateRevalidatesAdmission(t *testing.T) {
	ctx := context.Background()
	six := 6

	t.Run("cannot grow the party on a closed slot", func(t *testing.T) {
		slot := testSlot()
		slot.IsOpen = false
		repo := &fakeBookings{booking: guestBooking()}
		svc := newTestService(repo, &fakeSlots{slot: slot}, &fakeSys{})

		_, err := svc.UpdateByCode(ctx, guestBooking().BookingCode, UpdateRequest{People: &six})
		assert.ErrorIs(t, err, ErrSlotClosed)
		assert.Empty(t, repo.updated)
	})

	t.Run("cannot grow the party on a paused system", func(t *testing.T) {
		repo := &fakeBookings{booking: guestBooking()}
		svc := newTestService(repo, &fakeSlots{slot: testSlot()}, &fakeSys{paused: true})

		_, err := svc.UpdateByCode(ctx, guestBooking().BookingCode, UpdateRequest{People: &six})
		assert.ErrorIs(t, err, ErrSystemPaused)
		assert.Empty(t, repo.updated)
	})

	t.Run("cannot grow past the slot's people capacity", func(t *testing.T) {
		// 14 other people seated; growing from 2 to 6 would reach 20 > 18.
		repo := &fakeBookings{booking: guestBooking(), usage: SlotUsage{People: 14, Tables: 3}}
		svc := newTestService(repo, &fakeSlots{slot: testSlot()}, &fakeSys{})

		_, err := svc.UpdateByCode(ctx, guestBooking().BookingCode, UpdateRequest{People: &six})
		assert.ErrorIs(t, err, ErrNoPeopleCapacity)
	})

	t.Run("grows within capacity", func(t *testing.T) {
		repo := &fakeBookings{booking: guestBooking(), usage: SlotUsage{People: 10, Tables: 2}}
		svc := newTestService(repo, &fakeSlots{slot: testSlot()}, &fakeSys{})

		b, err := svc.UpdateByCode(ctx, guestBooking().BookingCode, UpdateRequest{People: &six})
		require.NoError(t, err)
		assert.Equal(t, 6, b.People)
		assert.Len(t, repo.updated, 1)
	})

	t.Run("status-only change skips admission", func(t *testing.T) {
		// Canceling must work even after the slot was soft-closed.
		slot := testSlot()
		slot.IsOpen = false
		repo := &fakeBookings{booking: guestBooking()}
		svc := newTestService(repo, &fakeSlots{slot: slot}, &fakeSys{})

		canceled := StatusCanceled
		b, err := svc.UpdateByCode(ctx, guestBooking().BookingCode, UpdateRequest{Status: &canceled})
		require.NoError(t, err)
		assert.Equal(t, StatusCanceled, b.Status)
	})

	t.Run("shrinking to a canceled booking skips admission", func(t *testing.T) {
		repo := &fakeBookings{booking: guestBooking(), usage: SlotUsage{People: 18, Tables: 4}}
		svc := newTestService(repo, &fakeSlots{slot: testSlot()}, &fakeSys{})

		canceled := StatusCanceled
		one := 1
		_, err := svc.UpdateByCode(ctx, guestBooking().BookingCode,
			UpdateRequest{Status: &canceled, People: &one})
		require.NoError(t, err)
	})

	t.Run("invalid transition is rejected before any write", func(t *testing.T) {
		b := guestBooking()
		b.Status = StatusNoShow
		repo := &fakeBookings{booking: b}
		svc := newTestService(repo, &fakeSlots{slot: testSlot()}, &fakeSys{})

		arrived := StatusArrived
		_, err := svc.UpdateByCode(ctx, b.BookingCode, UpdateRequest{Status: &arrived})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.updated)
	})
}
