package bookingsystem

import (
	"context"
	"strings"

	"github.com/meishi-app/meishi-backend/internal/restaurant"
)

type CreateRequest struct {
	RestaurantID int64
	MealType     MealType
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*BookingSystem, error)
	GetByID(ctx context.Context, id int64) (*BookingSystem, error)
	GetOwned(ctx context.Context, id int64, ownerID string) (*BookingSystem, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, ownerID string) ([]*BookingSystem, error)
	Pause(ctx context.Context, id int64, ownerID string) error
	Resume(ctx context.Context, id int64, ownerID string) error
	Delete(ctx context.Context, id int64, ownerID string) error

	CreateType(ctx context.Context, systemID int64, ownerID string, name string) (*BookingType, error)
	ListTypes(ctx context.Context, systemID int64, ownerID string) ([]*BookingType, error)
	DeleteType(ctx context.Context, typeID int64, ownerID string) error
}

type service struct {
	repo        Repository
	restService restaurant.Service
}

func NewService(repo Repository, restService restaurant.Service) Service {
	return &service{repo: repo, restService: restService}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*BookingSystem, error) {
	if !req.MealType.Valid() {
		return nil, ErrInvalidMealType
	}

	if _, err := s.restService.GetOwned(ctx, req.RestaurantID, ownerID); err != nil {
		return nil, err
	}

	bs := &BookingSystem{
		RestaurantID: req.RestaurantID,
		MealType:     req.MealType,
	}

	// The (restaurant, meal_type) unique key is the authority; the repo maps
	// its violation to ErrDuplicateMealType.
	if err := s.repo.Create(ctx, bs); err != nil {
		return nil, err
	}
	return bs, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*BookingSystem, error) {
	return s.repo.GetByID(ctx, id)
}

// GetOwned fetches a booking system and verifies the caller owns its restaurant.
func (s *service) GetOwned(ctx context.Context, id int64, ownerID string) (*BookingSystem, error) {
	bs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.restService.GetOwned(ctx, bs.RestaurantID, ownerID); err != nil {
		return nil, ErrNotFound
	}
	return bs, nil
}

func (s *service) ListByRestaurant(ctx context.Context, restaurantID int64, ownerID string) ([]*BookingSystem, error) {
	if _, err := s.restService.GetOwned(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// Pause blocks new bookings for the system. Existing slots and bookings are untouched.
func (s *service) Pause(ctx context.Context, id int64, ownerID string) error {
	if _, err := s.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.SetPaused(ctx, id, true)
}

// Resume allows new bookings for the system again.
func (s *service) Resume(ctx context.Context, id int64, ownerID string) error {
	if _, err := s.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.SetPaused(ctx, id, false)
}

func (s *service) Delete(ctx context.Context, id int64, ownerID string) error {
	if _, err := s.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CreateType(ctx context.Context, systemID int64, ownerID string, name string) (*BookingType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTypeNameRequired
	}

	if _, err := s.GetOwned(ctx, systemID, ownerID); err != nil {
		return nil, err
	}

	bt := &BookingType{
		BookingSystemID: systemID,
		Name:            name,
	}
	if err := s.repo.CreateType(ctx, bt); err != nil {
		return nil, err
	}
	return bt, nil
}

func (s *service) ListTypes(ctx context.Context, systemID int64, ownerID string) ([]*BookingType, error) {
	if _, err := s.GetOwned(ctx, systemID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListTypes(ctx, systemID)
}

func (s *service) DeleteType(ctx context.Context, typeID int64, ownerID string) error {
	bt, err := s.repo.GetTypeByID(ctx, typeID)
	if err != nil {
		return err
	}
	if _, err := s.GetOwned(ctx, bt.BookingSystemID, ownerID); err != nil {
		return err
	}
	return s.repo.DeleteType(ctx, typeID)
}
