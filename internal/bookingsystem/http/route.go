package http

import (
	"github.com/gin-gonic/gin"
	"github.com/meishi-app/meishi-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/booking-systems")

	group.Use(authMiddleware, auth.RestaurantRequired())
	{
		group.GET("", h.ListByRestaurant)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/pause", h.Pause)
		group.POST("/:id/resume", h.Resume)

		group.GET("/:id/booking-types", h.ListTypes)
		group.POST("/:id/booking-types", h.CreateType)
		group.DELETE("/:id/booking-types/:typeId", h.DeleteType)
	}
}
