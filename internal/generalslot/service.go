package generalslot

import (
	"context"

	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

// Reconciler keeps materialized time slots in sync with rule changes.
// Implemented by the slot generator; an interface here avoids an import cycle.
type Reconciler interface {
	OnRuleCreated(ctx context.Context, g *GeneralTimeSlot) error
	OnRuleUpdated(ctx context.Context, g *GeneralTimeSlot) error
	OnRuleDeleted(ctx context.Context, g *GeneralTimeSlot) error
}

type CreateRequest struct {
	BookingSystemID int64
	Weekday         int
	StartTime       daytime.Time
	EndTime         daytime.Time
	IntervalMinutes int
	MaxPeople       int
	MaxTables       int
	MinPerBooking   int
	MaxPerBooking   int
}

type UpdateRequest struct {
	Weekday         *int
	StartTime       *daytime.Time
	EndTime         *daytime.Time
	IntervalMinutes *int
	MaxPeople       *int
	MaxTables       *int
	MinPerBooking   *int
	MaxPerBooking   *int
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*GeneralTimeSlot, error)
	GetByID(ctx context.Context, id int64, ownerID string) (*GeneralTimeSlot, error)
	ListBySystem(ctx context.Context, systemID int64, ownerID string) ([]*GeneralTimeSlot, error)
	Update(ctx context.Context, id int64, ownerID string, req UpdateRequest) (*GeneralTimeSlot, error)
	Delete(ctx context.Context, id int64, ownerID string) error
}

type service struct {
	repo       Repository
	sysService bookingsystem.Service
	reconciler Reconciler
}

func NewService(repo Repository, sysService bookingsystem.Service, reconciler Reconciler) Service {
	return &service{
		repo:       repo,
		sysService: sysService,
		reconciler: reconciler,
	}
}

// checkOverlap rejects a rule whose [start, end) window intersects another
// rule on the same system and weekday. excludeID skips the rule itself on update.
func (s *service) checkOverlap(ctx context.Context, g *GeneralTimeSlot, excludeID int64) error {
	existing, err := s.repo.ListBySystemWeekday(ctx, g.BookingSystemID, g.Weekday)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if g.OverlapsWith(other) {
			return ErrOverlap
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*GeneralTimeSlot, error) {
	if _, err := s.sysService.GetOwned(ctx, req.BookingSystemID, ownerID); err != nil {
		return nil, err
	}

	g := &GeneralTimeSlot{
		BookingSystemID: req.BookingSystemID,
		Weekday:         req.Weekday,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		IntervalMinutes: req.IntervalMinutes,
		MaxPeople:       req.MaxPeople,
		MaxTables:       req.MaxTables,
		MinPerBooking:   req.MinPerBooking,
		MaxPerBooking:   req.MaxPerBooking,
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, g, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	if err := s.reconciler.OnRuleCreated(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) getOwned(ctx context.Context, id int64, ownerID string) (*GeneralTimeSlot, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.sysService.GetOwned(ctx, g.BookingSystemID, ownerID); err != nil {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *service) GetByID(ctx context.Context, id int64, ownerID string) (*GeneralTimeSlot, error) {
	return s.getOwned(ctx, id, ownerID)
}

func (s *service) ListBySystem(ctx context.Context, systemID int64, ownerID string) ([]*GeneralTimeSlot, error) {
	if _, err := s.sysService.GetOwned(ctx, systemID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListBySystem(ctx, systemID)
}

func (s *service) Update(ctx context.Context, id int64, ownerID string, req UpdateRequest) (*GeneralTimeSlot, error) {
	g, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Weekday != nil {
		g.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		g.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		g.EndTime = *req.EndTime
	}
	if req.IntervalMinutes != nil {
		g.IntervalMinutes = *req.IntervalMinutes
	}
	if req.MaxPeople != nil {
		g.MaxPeople = *req.MaxPeople
	}
	if req.MaxTables != nil {
		g.MaxTables = *req.MaxTables
	}
	if req.MinPerBooking != nil {
		g.MinPerBooking = *req.MinPerBooking
	}
	if req.MaxPerBooking != nil {
		g.MaxPerBooking = *req.MaxPerBooking
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, g, g.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	if err := s.reconciler.OnRuleUpdated(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Delete(ctx context.Context, id int64, ownerID string) error {
	g, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	// Reconcile first: slots with bookings are closed, empty ones removed.
	// The FK then nulls general_slot_id on whatever rows remain.
	if err := s.reconciler.OnRuleDeleted(ctx, g); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
