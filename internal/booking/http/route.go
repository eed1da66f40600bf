package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, authOptional gin.HandlerFunc) {
	group := g.Group("/bookings")

	// Guests book and manage by code without an account.
	group.POST("", authOptional, h.Create)
	group.GET("/code/:code", h.GetByCode)
	group.PATCH("/code/:code", h.UpdateByCode)

	group.GET("", authMiddleware, h.List)
	group.GET("/:id", authMiddleware, h.Get)
	group.PATCH("/:id", authMiddleware, h.Update)
}
