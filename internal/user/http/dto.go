package http

import (
	"time"

	"github.com/meishi-app/meishi-backend/internal/user"
)

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	DisplayName  string `json:"display_name"`
	IsRestaurant bool   `json:"is_restaurant"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"display_name"`
	IsRestaurant bool      `json:"is_restaurant"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		IsRestaurant: u.IsRestaurant,
		CreatedAt:    u.CreatedAt,
	}
}
