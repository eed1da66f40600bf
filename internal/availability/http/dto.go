package http

import (
	"github.com/meishi-app/meishi-backend/internal/availability"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
)

type OptionResponse struct {
	BookingSystemID int64        `json:"booking_system_id"`
	MealType        string       `json:"meal_type"`
	TimeSlotID      int64        `json:"time_slot_id"`
	Date            string       `json:"date"`
	Time            daytime.Time `json:"time"`
	AvailablePeople int          `json:"available_people_capacity"`
	AvailableTables int          `json:"available_tables"`
	MinPerBooking   int          `json:"min"`
	MaxPerBooking   int          `json:"max"`
}

func NewOptionListResponse(options []availability.Option) []OptionResponse {
	items := make([]OptionResponse, len(options))
	for i, opt := range options {
		items[i] = OptionResponse{
			BookingSystemID: opt.BookingSystemID,
			MealType:        opt.MealType,
			TimeSlotID:      opt.TimeSlotID,
			Date:            daytime.FormatDate(opt.Date),
			Time:            opt.Time,
			AvailablePeople: opt.AvailablePeople,
			AvailableTables: opt.AvailableTables,
			MinPerBooking:   opt.MinPerBooking,
			MaxPerBooking:   opt.MaxPerBooking,
		}
	}
	return items
}
