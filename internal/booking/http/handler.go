package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/meishi-app/meishi-backend/internal/auth"
	"github.com/meishi-app/meishi-backend/internal/booking"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
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

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var userID *string
	if id := auth.GetUserID(c); id != "" {
		userID = &id
	}

	b, err := h.service.Create(c.Request.Context(), userID, booking.CreateRequest{
		TimeSlotID:  body.TimeSlotID,
		BookingType: body.BookingType,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		People:      body.People,
		Phone:       body.Phone,
		Email:       body.Email,
		Notes:       body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// Guests get the booking code back; it is their only handle.
	c.JSON(http.StatusCreated, NewBookingResponse(b, userID == nil))
}

// List serves both sides: restaurant accounts see the bookings of their
// restaurants (optionally filtered), customers see their own.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if !auth.IsRestaurant(c) {
		bookings, err := h.service.ListMine(ctx, auth.GetUserID(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, NewBookingListResponse(bookings))
		return
	}

	var filter booking.ListFilter
	if raw := c.Query("booking_system"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking_system"})
			return
		}
		filter.BookingSystemID = &id
	}
	if raw := c.Query("date"); raw != "" {
		d, err := daytime.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: expected YYYY-MM-DD"})
			return
		}
		filter.Date = &d
	}
	if raw := c.Query("status"); raw != "" {
		status := booking.Status(raw)
		filter.Status = &status
	}

	bookings, err := h.service.ListForOwner(ctx, auth.GetUserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingListResponse(bookings))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b, false))
}

func toUpdateRequest(body UpdateBookingRequest) booking.UpdateRequest {
	req := booking.UpdateRequest{
		BookingType: body.BookingType,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		People:      body.People,
		Phone:       body.Phone,
		Email:       body.Email,
		Notes:       body.Notes,
	}
	if body.Status != nil {
		status := booking.Status(*body.Status)
		req.Status = &status
	}
	return req
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, auth.GetUserID(c), toUpdateRequest(body))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b, false))
}

// parseCode rejects malformed booking codes without a database roundtrip.
// A bad code reads the same as a missing one.
func parseCode(c *gin.Context) (string, bool) {
	code, err := uuid.Parse(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return "", false
	}
	return code.String(), true
}

func (h *Handler) GetByCode(c *gin.Context) {
	code, ok := parseCode(c)
	if !ok {
		return
	}

	b, err := h.service.LookupByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b, true))
}

func (h *Handler) UpdateByCode(c *gin.Context) {
	code, ok := parseCode(c)
	if !ok {
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.UpdateByCode(c.Request.Context(), code, toUpdateRequest(body))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b, true))
}
