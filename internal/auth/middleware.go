package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		// Store user info into Gin context for later handlers.
		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("isRestaurant", claims.IsRestaurant)

		c.Next()
	}
}

// AuthOptional parses a bearer token when present but lets unauthenticated
// requests through. Guest booking endpoints use it.
func AuthOptional(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Next()
			return
		}

		if claims, err := jwtManager.ParseAndValidate(parts[1]); err == nil {
			c.Set("userID", claims.UserID)
			c.Set("userEmail", claims.Email)
			c.Set("isRestaurant", claims.IsRestaurant)
		}

		c.Next()
	}
}

// RestaurantRequired gates owner-only endpoints. It must run after AuthRequired.
func RestaurantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsRestaurant(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "restaurant account required",
			})
			return
		}
		c.Next()
	}
}
