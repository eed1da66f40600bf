package http

import (
	"time"

	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
)

type CreateBookingSystemRequest struct {
	RestaurantID int64  `json:"restaurant_id" binding:"required"`
	MealType     string `json:"meal_type" binding:"required,oneof=breakfast lunch dinner brunch general"`
}

type BookingSystemResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	MealType     string    `json:"meal_type"`
	IsPaused     bool      `json:"is_paused"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewBookingSystemResponse(bs *bookingsystem.BookingSystem) BookingSystemResponse {
	return BookingSystemResponse{
		ID:           bs.ID,
		RestaurantID: bs.RestaurantID,
		MealType:     string(bs.MealType),
		IsPaused:     bs.IsPaused,
		CreatedAt:    bs.CreatedAt,
	}
}

type CreateBookingTypeRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type BookingTypeResponse struct {
	ID              int64  `json:"id"`
	BookingSystemID int64  `json:"booking_system_id"`
	Name            string `json:"name"`
}

func NewBookingTypeResponse(bt *bookingsystem.BookingType) BookingTypeResponse {
	return BookingTypeResponse{
		ID:              bt.ID,
		BookingSystemID: bt.BookingSystemID,
		Name:            bt.Name,
	}
}
