package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meishi-app/meishi-backend/internal/auth"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/pkg/response"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
)

type Handler struct {
	service timeslot.Service
}

func NewHandler(service timeslot.Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	systemID, err := strconv.ParseInt(c.Query("booking_system"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_system query parameter is required"})
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := daytime.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: expected YYYY-MM-DD"})
			return
		}
		date = &d
	}

	slots, err := h.service.ListBySystem(c.Request.Context(), systemID, auth.GetUserID(c), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTimeSlotListResponse(slots))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ts, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTimeSlotResponse(ts))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ts, err := h.service.Update(c.Request.Context(), id, auth.GetUserID(c), timeslot.UpdateRequest{
		IsOpen:        body.IsOpen,
		MaxPeople:     body.MaxPeople,
		MaxTables:     body.MaxTables,
		MinPerBooking: body.MinPerBooking,
		MaxPerBooking: body.MaxPerBooking,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTimeSlotResponse(ts))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateCustomBatch(c *gin.Context) {
	var body CustomBatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := daytime.ParseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: expected YYYY-MM-DD"})
		return
	}
	start, err := daytime.ParseTime(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time: expected HH:MM or HH:MM:SS"})
		return
	}
	end, err := daytime.ParseTime(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time: expected HH:MM or HH:MM:SS"})
		return
	}

	slots, err := h.service.CreateCustomBatch(c.Request.Context(), auth.GetUserID(c), timeslot.CustomBatchRequest{
		BookingSystemID: body.BookingSystemID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		IntervalMinutes: body.IntervalMinutes,
		MaxPeople:       body.MaxPeople,
		MaxTables:       body.MaxTables,
		MinPerBooking:   body.MinPerBooking,
		MaxPerBooking:   body.MaxPerBooking,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewTimeSlotListResponse(slots))
}
