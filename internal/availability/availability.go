// Package availability answers the customer-facing question: which slots of a
// restaurant can seat a party on a given date.
package availability

import (
	"context"
	"time"

	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/restaurant"
)

// Option is one bookable slot with its remaining capacity.
type Option struct {
	BookingSystemID int64
	MealType        string
	TimeSlotID      int64
	Date            time.Time
	Time            daytime.Time
	AvailablePeople int
	AvailableTables int
	MinPerBooking   int
	MaxPerBooking   int
}

type Service interface {
	// Query lists the open slots of a restaurant's non-paused systems on a
	// date. people, when positive, narrows the result to slots that can
	// admit a party of that size.
	Query(ctx context.Context, restaurantID int64, date time.Time, people int) ([]Option, error)
}

type service struct {
	repo        Repository
	restService restaurant.Service
}

func NewService(repo Repository, restService restaurant.Service) Service {
	return &service{repo: repo, restService: restService}
}

func (s *service) Query(ctx context.Context, restaurantID int64, date time.Time, people int) ([]Option, error) {
	if _, err := s.restService.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	options, err := s.repo.ScanRestaurantDate(ctx, restaurantID, date)
	if err != nil {
		return nil, err
	}
	if people <= 0 {
		return options, nil
	}

	admissible := make([]Option, 0, len(options))
	for _, opt := range options {
		if people < opt.MinPerBooking || people > opt.MaxPerBooking {
			continue
		}
		if opt.AvailablePeople < people || opt.AvailableTables < 1 {
			continue
		}
		admissible = append(admissible, opt)
	}
	return admissible, nil
}
