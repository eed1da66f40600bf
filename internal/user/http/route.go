package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
	g.GET("/users/me", authMiddleware, h.Me)
}
