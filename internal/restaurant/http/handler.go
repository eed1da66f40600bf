package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meishi-app/meishi-backend/internal/auth"
	"github.com/meishi-app/meishi-backend/internal/pkg/response"
	"github.com/meishi-app/meishi-backend/internal/restaurant"
)

type Handler struct {
	service restaurant.Service
}

func NewHandler(service restaurant.Service) *Handler {
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
	var body CreateRestaurantRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), restaurant.CreateRequest{
		OwnerID: auth.GetUserID(c),
		Name:    body.Name,
		Address: body.Address,
		Cuisine: body.Cuisine,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRestaurantResponse(r))
}

func (h *Handler) List(c *gin.Context) {
	restaurants, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		items[i] = NewRestaurantResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	r, err := h.service.GetOwned(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRestaurantResponse(r))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, auth.GetUserID(c), restaurant.UpdateRequest{
		Name:    body.Name,
		Address: body.Address,
		Cuisine: body.Cuisine,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRestaurantResponse(r))
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
