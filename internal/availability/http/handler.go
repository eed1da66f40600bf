package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meishi-app/meishi-backend/internal/availability"
	"github.com/meishi-app/meishi-backend/internal/pkg/daytime"
	"github.com/meishi-app/meishi-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Query(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Query("restaurant"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant query parameter is required"})
		return
	}

	date, err := daytime.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required: expected YYYY-MM-DD"})
		return
	}

	people := 0
	if raw := c.Query("people"); raw != "" {
		people, err = strconv.Atoi(raw)
		if err != nil || people < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid people"})
			return
		}
	}

	options, err := h.service.Query(c.Request.Context(), restaurantID, date, people)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOptionListResponse(options))
}
