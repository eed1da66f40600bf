package http

import (
	"github.com/gin-gonic/gin"
	"github.com/meishi-app/meishi-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/time-slots")

	group.Use(authMiddleware, auth.RestaurantRequired())
	{
		group.GET("", h.List)
		group.POST("/batch", h.CreateCustomBatch)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
