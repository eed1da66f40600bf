package http

import (
	"time"

	"github.com/meishi-app/meishi-backend/internal/generalslot"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

type CreateGeneralSlotRequest struct {
	BookingSystemID int64  `json:"booking_system_id" binding:"required"`
	Weekday         *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,min=1"`
	MaxPeople       int    `json:"max_people" binding:"required,min=1"`
	MaxTables       int    `json:"max_tables" binding:"required,min=1"`
	MinPerBooking   int    `json:"min" binding:"required,min=1"`
	MaxPerBooking   int    `json:"max" binding:"required,min=1"`
}

type UpdateGeneralSlotRequest struct {
	Weekday         *int    `json:"weekday" binding:"omitempty,min=0,max=6"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	IntervalMinutes *int    `json:"interval_minutes" binding:"omitempty,min=1"`
	MaxPeople       *int    `json:"max_people" binding:"omitempty,min=1"`
	MaxTables       *int    `json:"max_tables" binding:"omitempty,min=1"`
	MinPerBooking   *int    `json:"min" binding:"omitempty,min=1"`
	MaxPerBooking   *int    `json:"max" binding:"omitempty,min=1"`
}

type GeneralSlotResponse struct {
	ID              int64        `json:"id"`
	BookingSystemID int64        `json:"booking_system_id"`
	Weekday         int          `json:"weekday"`
	StartTime       daytime.Time `json:"start_time"`
	EndTime         daytime.Time `json:"end_time"`
	IntervalMinutes int          `json:"interval_minutes"`
	MaxPeople       int          `json:"max_people"`
	MaxTables       int          `json:"max_tables"`
	MinPerBooking   int          `json:"min"`
	MaxPerBooking   int          `json:"max"`
	CreatedAt       time.Time    `json:"created_at"`
}

func NewGeneralSlotResponse(g *generalslot.GeneralTimeSlot) GeneralSlotResponse {
	return GeneralSlotResponse{
		ID:              g.ID,
		BookingSystemID: g.BookingSystemID,
		Weekday:         g.Weekday,
		StartTime:       g.StartTime,
		EndTime:         g.EndTime,
		IntervalMinutes: g.IntervalMinutes,
		MaxPeople:       g.MaxPeople,
		MaxTables:       g.MaxTables,
		MinPerBooking:   g.MinPerBooking,
		MaxPerBooking:   g.MaxPerBooking,
		CreatedAt:       g.CreatedAt,
	}
}
