package http

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes the public availability query.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/availability", h.Query)
}
