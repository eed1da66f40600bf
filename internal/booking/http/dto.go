package http

import (
	"time"

	"github.com/meishi-app/meishi-backend/internal/booking"
)

type CreateBookingRequest struct {
	TimeSlotID  int64  `json:"time_slot_id" binding:"required"`
	BookingType string `json:"booking_type"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	People      int    `json:"people" binding:"required,min=1"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Notes       string `json:"notes"`
}

type UpdateBookingRequest struct {
	BookingType *string `json:"booking_type"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	People      *int    `json:"people" binding:"omitempty,min=1"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}

type BookingResponse struct {
	ID          int64     `json:"id"`
	TimeSlotID  int64     `json:"time_slot_id"`
	BookingCode string    `json:"booking_code,omitempty"`
	BookingType string    `json:"booking_type"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	People      int       `json:"people"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBookingResponse renders a booking. The booking code is only exposed to
// guests, who need it to find the booking again.
func NewBookingResponse(b *booking.Booking, includeCode bool) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		TimeSlotID:  b.TimeSlotID,
		BookingType: b.BookingType,
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		People:      b.People,
		Phone:       b.Phone,
		Email:       b.Email,
		Notes:       b.Notes,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if includeCode {
		resp.BookingCode = b.BookingCode
	}
	return resp
}

func NewBookingListResponse(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b, false)
	}
	return items
}
