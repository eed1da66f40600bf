package http

import (
	"time"

	"github.com/meishi-app/meishi-backend/internal/restaurant"
)

type CreateRestaurantRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Cuisine string `json:"cuisine"`
}

type UpdateRestaurantRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Cuisine *string `json:"cuisine"`
}

type RestaurantResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Cuisine   string    `json:"cuisine"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRestaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		Cuisine:   r.Cuisine,
		CreatedAt: r.CreatedAt,
	}
}
