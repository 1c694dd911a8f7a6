package api

import "bayou-social/internal/models"

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
