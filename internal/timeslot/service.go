package timeslot

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

type UpdateRequest struct {
	IsOpen        *bool
	MaxPeople     *int
	MaxTables     *int
	MinPerBooking *int
	MaxPerBooking *int
}

// CustomBatchRequest creates a run of ad hoc slots on a single date, outside
// any weekly rule. Times from StartTime through EndTime inclusive, stepping
// by IntervalMinutes.
type CustomBatchRequest struct {
	BookingSystemID int64
	Date            time.Time
	StartTime       daytime.Time
	EndTime         daytime.Time
	IntervalMinutes int
	MaxPeople       int
	MaxTables       int
	MinPerBooking   int
	MaxPerBooking   int
}

type Service interface {
	GetByID(ctx context.Context, id int64, ownerID string) (*TimeSlot, error)
	ListBySystem(ctx context.Context, systemID int64, ownerID string, date *time.Time) ([]*TimeSlot, error)
	Update(ctx context.Context, id int64, ownerID string, req UpdateRequest) (*TimeSlot, error)
	Delete(ctx context.Context, id int64, ownerID string) error
	CreateCustomBatch(ctx context.Context, ownerID string, req CustomBatchRequest) ([]*TimeSlot, error)
}

type service struct {
	repo       Repository
	pool       *pgxpool.Pool
	sysService bookingsystem.Service
}

func NewService(repo Repository, pool *pgxpool.Pool, sysService bookingsystem.Service) Service {
	return &service{repo: repo, pool: pool, sysService: sysService}
}

func (s *service) getOwned(ctx context.Context, id int64, ownerID string) (*TimeSlot, error) {
	ts, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.sysService.GetOwned(ctx, ts.BookingSystemID, ownerID); err != nil {
		return nil, ErrNotFound
	}
	return ts, nil
}

func (s *service) GetByID(ctx context.Context, id int64, ownerID string) (*TimeSlot, error) {
	return s.getOwned(ctx, id, ownerID)
}

func (s *service) ListBySystem(ctx context.Context, systemID int64, ownerID string, date *time.Time) ([]*TimeSlot, error) {
	if _, err := s.sysService.GetOwned(ctx, systemID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListBySystem(ctx, systemID, date)
}

func (s *service) Update(ctx context.Context, id int64, ownerID string, req UpdateRequest) (*TimeSlot, error) {
	ts, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.IsOpen != nil {
		ts.IsOpen = *req.IsOpen
	}
	if req.MaxPeople != nil {
		ts.MaxPeople = *req.MaxPeople
	}
	if req.MaxTables != nil {
		ts.MaxTables = *req.MaxTables
	}
	if req.MinPerBooking != nil {
		ts.MinPerBooking = *req.MinPerBooking
	}
	if req.MaxPerBooking != nil {
		ts.MaxPerBooking = *req.MaxPerBooking
	}

	if ts.MaxPeople < 1 || ts.MaxTables < 1 || ts.MinPerBooking < 1 || ts.MaxPerBooking < 1 {
		return nil, ErrInvalidCapacity
	}
	if ts.MinPerBooking > ts.MaxPerBooking {
		return nil, ErrMinExceedsMax
	}

	if err := s.repo.Update(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *service) Delete(ctx context.Context, id int64, ownerID string) error {
	ts, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	count, err := s.repo.CountBookings(ctx, ts.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasBookings
	}

	return s.repo.Delete(ctx, ts.ID)
}

func (s *service) CreateCustomBatch(ctx context.Context, ownerID string, req CustomBatchRequest) ([]*TimeSlot, error) {
	if _, err := s.sysService.GetOwned(ctx, req.BookingSystemID, ownerID); err != nil {
		return nil, err
	}

	if !req.StartTime.Valid() || !req.EndTime.Valid() || req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	span := req.EndTime.Sub(req.StartTime)
	if req.IntervalMinutes <= 0 || req.IntervalMinutes > span {
		return nil, ErrInvalidInterval
	}
	if req.MaxPeople < 1 || req.MaxTables < 1 || req.MinPerBooking < 1 || req.MaxPerBooking < 1 {
		return nil, ErrInvalidCapacity
	}
	if req.MinPerBooking > req.MaxPerBooking {
		return nil, ErrMinExceedsMax
	}

	exists, err := s.repo.ExistsInRange(ctx, req.BookingSystemID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlotsExistInRange
	}

	var slots []*TimeSlot
	for t := req.StartTime; t <= req.EndTime; t = t.Add(req.IntervalMinutes) {
		slots = append(slots, &TimeSlot{
			BookingSystemID: req.BookingSystemID,
			Date:            daytime.DateOf(req.Date),
			Time:            t,
			IsOpen:          true,
			MaxPeople:       req.MaxPeople,
			MaxTables:       req.MaxTables,
			MinPerBooking:   req.MinPerBooking,
			MaxPerBooking:   req.MaxPerBooking,
		})
	}

	if err := s.repo.BulkInsert(ctx, s.pool, slots); err != nil {
		return nil, err
	}
	return s.repo.ListBySystem(ctx, req.BookingSystemID, &req.Date)
}
