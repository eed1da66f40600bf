package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meishi-app/meishi-backend/internal/auth"
	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	"github.com/meishi-app/meishi-backend/internal/pkg/response"
)

type Handler struct {
	service bookingsystem.Service
}

func NewHandler(service bookingsystem.Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingSystemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	bs, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), bookingsystem.CreateRequest{
		RestaurantID: body.RestaurantID,
		MealType:     bookingsystem.MealType(body.MealType),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingSystemResponse(bs))
}

func (h *Handler) ListByRestaurant(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Query("restaurant_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id query parameter is required"})
		return
	}

	systems, err := h.service.ListByRestaurant(c.Request.Context(), restaurantID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingSystemResponse, len(systems))
	for i, bs := range systems {
		items[i] = NewBookingSystemResponse(bs)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bs, err := h.service.GetOwned(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingSystemResponse(bs))
}

func (h *Handler) Pause(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Pause(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "booking system paused"})
}

func (h *Handler) Resume(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Resume(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "booking system resumed"})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTypes(c *gin.Context) {
	systemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	types, err := h.service.ListTypes(c.Request.Context(), systemID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingTypeResponse, len(types))
	for i, bt := range types {
		items[i] = NewBookingTypeResponse(bt)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateType(c *gin.Context) {
	systemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body CreateBookingTypeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bt, err := h.service.CreateType(c.Request.Context(), systemID, auth.GetUserID(c), body.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingTypeResponse(bt))
}

func (h *Handler) DeleteType(c *gin.Context) {
	typeID, ok := parseID(c, "typeId")
	if !ok {
		return
	}

	if err := h.service.DeleteType(c.Request.Context(), typeID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
