package http

import (
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

type UpdateTimeSlotRequest struct {
	IsOpen        *bool `json:"is_open"`
	MaxPeople     *int  `json:"max_people" binding:"omitempty,min=1"`
	MaxTables     *int  `json:"max_tables" binding:"omitempty,min=1"`
	MinPerBooking *int  `json:"min" binding:"omitempty,min=1"`
	MaxPerBooking *int  `json:"max" binding:"omitempty,min=1"`
}

type CustomBatchRequest struct {
	BookingSystemID int64  `json:"booking_system_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,min=1"`
	MaxPeople       int    `json:"max_people" binding:"required,min=1"`
	MaxTables       int    `json:"max_tables" binding:"required,min=1"`
	MinPerBooking   int    `json:"min" binding:"required,min=1"`
	MaxPerBooking   int    `json:"max" binding:"required,min=1"`
}

type TimeSlotResponse struct {
	ID              int64        `json:"id"`
	BookingSystemID int64        `json:"booking_system_id"`
	GeneralSlotID   *int64       `json:"general_time_slot_id"`
	Date            string       `json:"date"`
	Time            daytime.Time `json:"time"`
	IsOpen          bool         `json:"is_open"`
	MaxPeople       int          `json:"max_people"`
	MaxTables       int          `json:"max_tables"`
	MinPerBooking   int          `json:"min"`
	MaxPerBooking   int          `json:"max"`
}

func NewTimeSlotResponse(ts *timeslot.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:              ts.ID,
		BookingSystemID: ts.BookingSystemID,
		GeneralSlotID:   ts.GeneralSlotID,
		Date:            daytime.FormatDate(ts.Date),
		Time:            ts.Time,
		IsOpen:          ts.IsOpen,
		MaxPeople:       ts.MaxPeople,
		MaxTables:       ts.MaxTables,
		MinPerBooking:   ts.MinPerBooking,
		MaxPerBooking:   ts.MaxPerBooking,
	}
}

func NewTimeSlotListResponse(slots []*timeslot.TimeSlot) []TimeSlotResponse {
	items := make([]TimeSlotResponse, len(slots))
	for i, ts := range slots {
		items[i] = NewTimeSlotResponse(ts)
	}
	return items
}
