package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meishi-app/meishi-backend/internal/auth"
	"github.com/meishi-app/meishi-backend/internal/generalslot"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/pkg/response"
)

type Handler struct {
	service generalslot.Service
}

func NewHandler(service generalslot.Service) *Handler {
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

func parseTime(c *gin.Context, field, value string) (daytime.Time, bool) {
	t, err := daytime.ParseTime(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + ": expected HH:MM or HH:MM:SS"})
		return 0, false
	}
	return t, true
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateGeneralSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, ok := parseTime(c, "start_time", body.StartTime)
	if !ok {
		return
	}
	end, ok := parseTime(c, "end_time", body.EndTime)
	if !ok {
		return
	}

	g, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), generalslot.CreateRequest{
		BookingSystemID: body.BookingSystemID,
		Weekday:         *body.Weekday,
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
	c.JSON(http.StatusCreated, NewGeneralSlotResponse(g))
}

func (h *Handler) List(c *gin.Context) {
	systemID, err := strconv.ParseInt(c.Query("booking_system"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_system query parameter is required"})
		return
	}

	slots, err := h.service.ListBySystem(c.Request.Context(), systemID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]GeneralSlotResponse, len(slots))
	for i, g := range slots {
		items[i] = NewGeneralSlotResponse(g)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGeneralSlotResponse(g))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body UpdateGeneralSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := generalslot.UpdateRequest{
		Weekday:         body.Weekday,
		IntervalMinutes: body.IntervalMinutes,
		MaxPeople:       body.MaxPeople,
		MaxTables:       body.MaxTables,
		MinPerBooking:   body.MinPerBooking,
		MaxPerBooking:   body.MaxPerBooking,
	}

	if body.StartTime != nil {
		start, ok := parseTime(c, "start_time", *body.StartTime)
		if !ok {
			return
		}
		req.StartTime = &start
	}
	if body.EndTime != nil {
		end, ok := parseTime(c, "end_time", *body.EndTime)
		if !ok {
			return
		}
		req.EndTime = &end
	}

	g, err := h.service.Update(c.Request.Context(), id, auth.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGeneralSlotResponse(g))
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
