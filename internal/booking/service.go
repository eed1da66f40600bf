package booking

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	"github.com/meishi-app/meishi-backend/internal/db"
	"github.com/meishi-app/meishi-backend/internal/pkg/apperror"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

var errInvalidPeople = apperror.New(http.StatusBadRequest, "people must be at least 1")

type CreateRequest struct {
	TimeSlotID  int64
	BookingType string
	FirstName   string
	LastName    string
	People      int
	Phone       string
	Email       string
	Notes       string
}

type UpdateRequest struct {
	BookingType *string
	FirstName   *string
	LastName    *string
	People      *int
	Phone       *string
	Email       *string
	Notes       *string
	Status      *Status
}

type Service interface {
	// Create books a slot. userID is nil for guests; they get the returned
	// booking code as their only handle on the booking.
	Create(ctx context.Context, userID *string, req CreateRequest) (*Booking, error)
	// Get returns a booking to its account holder or the restaurant owner.
	Get(ctx context.Context, id int64, actorID string) (*Booking, error)
	ListMine(ctx context.Context, userID string) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID string, filter ListFilter) ([]*Booking, error)
	Update(ctx context.Context, id int64, actorID string, req UpdateRequest) (*Booking, error)
	LookupByCode(ctx context.Context, code string) (*Booking, error)
	UpdateByCode(ctx context.Context, code string, req UpdateRequest) (*Booking, error)
}

type service struct {
	repo       Repository
	slots      timeslot.Repository
	sysService bookingsystem.Service
	runTx      func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewService(repo Repository, slots timeslot.Repository, sysService bookingsystem.Service, pool *pgxpool.Pool) Service {
	return &service{
		repo:       repo,
		slots:      slots,
		sysService: sysService,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return db.WithTx(ctx, pool, fn)
		},
	}
}

func (s *service) Create(ctx context.Context, userID *string, req CreateRequest) (*Booking, error) {
	if req.People < 1 {
		return nil, errInvalidPeople
	}

	b := &Booking{
		TimeSlotID:  req.TimeSlotID,
		UserID:      userID,
		BookingType: req.BookingType,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		People:      req.People,
		Phone:       req.Phone,
		Email:       req.Email,
		Notes:       req.Notes,
		Status:      StatusConfirmed,
	}

	// Lock the slot row so concurrent bookings validate against a stable
	// aggregate and serialize their inserts.
	err := s.runTx(ctx, func(tx pgx.Tx) error {
		slot, err := s.slots.GetByIDForUpdate(ctx, tx, req.TimeSlotID)
		if err != nil {
			return err
		}

		sys, err := s.sysService.GetByID(ctx, slot.BookingSystemID)
		if err != nil {
			return err
		}

		usage, err := s.repo.UsageForSlot(ctx, tx, slot.ID, 0)
		if err != nil {
			return err
		}

		if err := Admit(slot, sys.IsPaused, req.People, usage); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// canAccess reports whether the actor holds the booking or owns the
// restaurant behind it.
func (s *service) canAccess(ctx context.Context, b *Booking, actorID string) bool {
	if b.UserID != nil && *b.UserID == actorID {
		return true
	}
	slot, err := s.slots.GetByID(ctx, b.TimeSlotID)
	if err != nil {
		return false
	}
	_, err = s.sysService.GetOwned(ctx, slot.BookingSystemID, actorID)
	return err == nil
}

func (s *service) Get(ctx context.Context, id int64, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(ctx, b, actorID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string, filter ListFilter) ([]*Booking, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListForOwner(ctx, ownerID, filter)
}

func (s *service) Update(ctx context.Context, id int64, actorID string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(ctx, b, actorID) {
		return nil, ErrNotFound
	}
	return s.applyUpdate(ctx, b, req)
}

func (s *service) LookupByCode(ctx context.Context, code string) (*Booking, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *service) UpdateByCode(ctx context.Context, code string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, b, req)
}

// applyUpdate merges the requested changes, checks the status transition, and
// when the party size changes, re-validates the slot's capacity under the
// same row lock the create path takes.
func (s *service) applyUpdate(ctx context.Context, b *Booking, req UpdateRequest) (*Booking, error) {
	if req.Status != nil {
		next := *req.Status
		if !next.Valid() {
			return nil, ErrInvalidStatus
		}
		if !b.Status.CanTransition(next) {
			return nil, ErrInvalidTransition
		}
		b.Status = next
	}

	if req.BookingType != nil {
		b.BookingType = *req.BookingType
	}
	if req.FirstName != nil {
		b.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		b.LastName = *req.LastName
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Email != nil {
		b.Email = *req.Email
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	peopleChanged := req.People != nil && *req.People != b.People
	if peopleChanged {
		if *req.People < 1 {
			return nil, errInvalidPeople
		}
		b.People = *req.People
	}

	err := s.runTx(ctx, func(tx pgx.Tx) error {
		// Changing the party size re-runs the full admission check under the
		// same row lock the create path takes, with this booking's old size
		// excluded from the aggregate. A canceled booking frees capacity, so
		// it skips the check; status-only changes (arrival, cancellation) go
		// through even when the slot has since been closed.
		if peopleChanged && b.Status.Counted() {
			slot, err := s.slots.GetByIDForUpdate(ctx, tx, b.TimeSlotID)
			if err != nil {
				return err
			}

			sys, err := s.sysService.GetByID(ctx, slot.BookingSystemID)
			if err != nil {
				return err
			}

			usage, err := s.repo.UsageForSlot(ctx, tx, b.TimeSlotID, b.ID)
			if err != nil {
				return err
			}

			if err := Admit(slot, sys.IsPaused, b.People, usage); err != nil {
				return err
			}
		}
		return s.repo.Update(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
