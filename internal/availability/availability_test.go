package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/restaurant"
)

type fakeRestService struct {
	restaurant.Service
}

func (f *fakeRestService) GetByID(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	if id != 1 {
		return nil, restaurant.ErrNotFound
	}
	return &restaurant.Restaurant{ID: id}, nil
}

type fakeRepo struct {
	options []Option
}

func (f *fakeRepo) ScanRestaurantDate(ctx context.Context, restaurantID int64, date time.Time) ([]Option, error) {
	return f.options, nil
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	options := []Option{
		{
			TimeSlotID: 1, Time: daytime.Time(18 * 60),
			AvailablePeople: 10, AvailableTables: 2,
			MinPerBooking: 2, MaxPerBooking: 8,
		},
		{
			TimeSlotID: 2, Time: daytime.Time(19 * 60),
			AvailablePeople: 3, AvailableTables: 1,
			MinPerBooking: 1, MaxPerBooking: 8,
		},
		{
			TimeSlotID: 3, Time: daytime.Time(20 * 60),
			AvailablePeople: 10, AvailableTables: 0,
			MinPerBooking: 1, MaxPerBooking: 8,
		},
	}
	svc := NewService(&fakeRepo{options: options}, &fakeRestService{})

	t.Run("no party size returns everything", func(t *testing.T) {
		got, err := svc.Query(ctx, 1, date, 0)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("filters by remaining capacity and tables", func(t *testing.T) {
		got, err := svc.Query(ctx, 1, date, 4)
		require.NoError(t, err)

		// Slot 2 lacks people capacity, slot 3 has no table.
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].TimeSlotID)
	})

	t.Run("respects per-booking bounds", func(t *testing.T) {
		got, err := svc.Query(ctx, 1, date, 1)
		require.NoError(t, err)

		// Slot 1 requires at least two people.
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].TimeSlotID)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		_, err := svc.Query(ctx, 99, date, 2)
		assert.ErrorIs(t, err, restaurant.ErrNotFound)
	})
}
