package booking

import (
	"net/http"
	"time"

	"github.com/meishi-app/meishi-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotClosed        = apperror.New(http.StatusConflict, "this time slot is closed for booking")
	ErrSystemPaused      = apperror.New(http.StatusConflict, "this booking system is currently paused")
	ErrPartyTooSmall     = apperror.New(http.StatusConflict, "party size is below the minimum for this time slot")
	ErrPartyTooLarge     = apperror.New(http.StatusConflict, "party size exceeds the maximum for this time slot")
	ErrNoPeopleCapacity  = apperror.New(http.StatusConflict, "this time slot cannot accommodate that many more people")
	ErrNoTablesLeft      = apperror.New(http.StatusConflict, "this time slot has no tables left")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "unknown booking status")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "this status change is not allowed")
)

// Status tracks a booking through its evening: confirmed on creation, then
// arrival and table-service stages, ending in a terminal state.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusArrived   Status = "arrived"
	StatusDessert   Status = "dessert"
	StatusBill      Status = "bill"
	StatusClean     Status = "clean"
	StatusGone      Status = "gone"
	StatusNoShow    Status = "noshow"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusArrived, StatusDessert, StatusBill,
		StatusClean, StatusGone, StatusNoShow, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusClean, StatusGone, StatusNoShow, StatusCanceled:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusConfirmed: {StatusArrived, StatusNoShow},
	StatusArrived:   {StatusDessert, StatusBill, StatusGone},
	StatusDessert:   {StatusBill},
	StatusBill:      {StatusClean},
}

// CanTransition reports whether a booking in state s may move to next.
// Setting the same status again is a no-op and always allowed; canceling is
// allowed from any non-terminal state.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	if next == StatusCanceled {
		return !s.Terminal()
	}
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Counted reports whether the booking occupies slot capacity. Canceled
// bookings release their people and table.
func (s Status) Counted() bool {
	return s != StatusCanceled
}

// Booking is a party's claim on a time slot. UserID is nil for guest
// bookings, which are addressed by BookingCode instead.
type Booking struct {
	ID          int64
	TimeSlotID  int64
	UserID      *string
	BookingCode string
	BookingType string
	FirstName   string
	LastName    string
	People      int
	Phone       string
	Email       string
	Notes       string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
