package timeslot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	"github.com/meishi-app/meishi-backend/internal/db"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

// fakeSysService satisfies the booking system lookups the slot service makes.
// Any system ID is owned by "owner"; everything else is not found.
type fakeSysService struct {
	bookingsystem.Service
}

func (f *fakeSysService) GetOwned(ctx context.Context, id int64, ownerID string) (*bookingsystem.BookingSystem, error) {
	if ownerID != "owner" {
		return nil, bookingsystem.ErrNotFound
	}
	return &bookingsystem.BookingSystem{ID: id}, nil
}

type fakeRepo struct {
	Repository

	slots         map[int64]*TimeSlot
	bookingCounts map[int64]int
	rangeTaken    bool
	inserted      []*TimeSlot
	deleted       []int64
	updated       []*TimeSlot
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slots:         make(map[int64]*TimeSlot),
		bookingCounts: make(map[int64]int),
	}
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*TimeSlot, error) {
	ts, ok := f.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ts
	return &copied, nil
}

func (f *fakeRepo) ListBySystem(ctx context.Context, systemID int64, date *time.Time) ([]*TimeSlot, error) {
	var out []*TimeSlot
	for _, ts := range f.slots {
		if ts.BookingSystemID == systemID {
			out = append(out, ts)
		}
	}
	out = append(out, f.inserted...)
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, ts *TimeSlot) error {
	f.updated = append(f.updated, ts)
	f.slots[ts.ID] = ts
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.slots[id]; !ok {
		return ErrNotFound
	}
	delete(f.slots, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) CountBookings(ctx context.Context, slotID int64) (int, error) {
	return f.bookingCounts[slotID], nil
}

func (f *fakeRepo) ExistsInRange(ctx context.Context, systemID int64, date time.Time, start, end daytime.Time) (bool, error) {
	return f.rangeTaken, nil
}

func (f *fakeRepo) BulkInsert(ctx context.Context, q db.Querier, slots []*TimeSlot) error {
	f.inserted = append(f.inserted, slots...)
	return nil
}

func seedSlot(repo *fakeRepo) *TimeSlot {
	ts := &TimeSlot{
		ID:              1,
		BookingSystemID: 10,
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:            daytime.Time(18 * 60),
		IsOpen:          true,
		MaxPeople:       20,
		MaxTables:       5,
		MinPerBooking:   1,
		MaxPerBooking:   8,
	}
	repo.slots[ts.ID] = ts
	return ts
}

func TestUpdateTimeSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial changes", func(t *testing.T) {
		repo := newFakeRepo()
		seedSlot(repo)
		svc := NewService(repo, nil, &fakeSysService{})

		closed := false
		people := 30
		ts, err := svc.Update(ctx, 1, "owner", UpdateRequest{IsOpen: &closed, MaxPeople: &people})
		require.NoError(t, err)
		assert.False(t, ts.IsOpen)
		assert.Equal(t, 30, ts.MaxPeople)
		assert.Equal(t, 5, ts.MaxTables)
	})

	t.Run("rejects min above max", func(t *testing.T) {
		repo := newFakeRepo()
		seedSlot(repo)
		svc := NewService(repo, nil, &fakeSysService{})

		min := 9
		_, err := svc.Update(ctx, 1, "owner", UpdateRequest{MinPerBooking: &min})
		assert.ErrorIs(t, err, ErrMinExceedsMax)
		assert.Empty(t, repo.updated)
	})

	t.Run("hidden from non-owner", func(t *testing.T) {
		repo := newFakeRepo()
		seedSlot(repo)
		svc := NewService(repo, nil, &fakeSysService{})

		open := true
		_, err := svc.Update(ctx, 1, "stranger", UpdateRequest{IsOpen: &open})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteTimeSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an empty slot", func(t *testing.T) {
		repo := newFakeRepo()
		seedSlot(repo)
		svc := NewService(repo, nil, &fakeSysService{})

		require.NoError(t, svc.Delete(ctx, 1, "owner"))
		assert.Equal(t, []int64{1}, repo.deleted)
	})

	t.Run("refuses while bookings exist", func(t *testing.T) {
		repo := newFakeRepo()
		seedSlot(repo)
		repo.bookingCounts[1] = 2
		svc := NewService(repo, nil, &fakeSysService{})

		err := svc.Delete(ctx, 1, "owner")
		assert.ErrorIs(t, err, ErrHasBookings)
		assert.Empty(t, repo.deleted)
	})
}

func TestCreateCustomBatch(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	validReq := func() CustomBatchRequest {
		return CustomBatchRequest{
			BookingSystemID: 10,
			Date:            date,
			StartTime:       daytime.Time(18 * 60),
			EndTime:         daytime.Time(20 * 60),
			IntervalMinutes: 30,
			MaxPeople:       16,
			MaxTables:       4,
			MinPerBooking:   2,
			MaxPerBooking:   6,
		}
	}

	t.Run("creates slots through the end inclusive", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, nil, &fakeSysService{})

		_, err := svc.CreateCustomBatch(ctx, "owner", validReq())
		require.NoError(t, err)

		// 18:00 through 20:00 every 30 minutes.
		require.Len(t, repo.inserted, 5)
		first, last := repo.inserted[0], repo.inserted[4]
		assert.Equal(t, daytime.Time(18*60), first.Time)
		assert.Equal(t, daytime.Time(20*60), last.Time)
		for _, ts := range repo.inserted {
			assert.True(t, ts.IsOpen)
			assert.Nil(t, ts.GeneralSlotID)
			assert.Equal(t, date, ts.Date)
			assert.Equal(t, 16, ts.MaxPeople)
		}
	})

	t.Run("rejects an occupied range", func(t *testing.T) {
		repo := newFakeRepo()
		repo.rangeTaken = true
		svc := NewService(repo, nil, &fakeSysService{})

		_, err := svc.CreateCustomBatch(ctx, "owner", validReq())
		assert.ErrorIs(t, err, ErrSlotsExistInRange)
		assert.Empty(t, repo.inserted)
	})

	t.Run("validates the window", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, nil, &fakeSysService{})

		req := validReq()
		req.StartTime, req.EndTime = req.EndTime, req.StartTime
		_, err := svc.CreateCustomBatch(ctx, "owner", req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		req = validReq()
		req.IntervalMinutes = 121
		_, err = svc.CreateCustomBatch(ctx, "owner", req)
		assert.ErrorIs(t, err, ErrInvalidInterval)

		req = validReq()
		req.MinPerBooking = 7
		_, err = svc.CreateCustomBatch(ctx, "owner", req)
		assert.ErrorIs(t, err, ErrMinExceedsMax)
	})

	t.Run("requires ownership", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, nil, &fakeSysService{})

		_, err := svc.CreateCustomBatch(ctx, "stranger", validReq())
		assert.Error(t, err)
		assert.Empty(t, repo.inserted)
	})
}
