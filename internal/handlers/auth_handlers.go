package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"bayou-social/internal/api"
	"bayou-social/internal/engine/actors"
	"bayou-social/internal/models"
	"bayou-social/internal/utils"
)

// RegisterUserRequest represents a request to register a new user
type RegisterUserRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PicturePath string `json:"picturePath"`
	Location    string `json:"location"`
	Occupation  string `json:"occupation"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleUserRegistration handles requests to register a new user
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request", err))
			return
		}

		if req.Email == "" || req.Password == "" {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Email and password are required", nil))
			return
		}

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Password:    req.Password,
			PicturePath: req.PicturePath,
			Location:    req.Location,
			Occupation:  req.Occupation,
		}, "user")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusCreated)
	}
}

// HandleUserLogin handles requests to log in a user. On success the response
// carries a fresh session token alongside the user record.
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request", err))
			return
		}

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.LoginMsg{
			Email:    req.Email,
			Password: req.Password,
		}, "user")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		if resultErr, ok := result.(*utils.AppError); ok {
			s.respondError(w, resultErr)
			return
		}

		user, ok := result.(*models.User)
		if !ok {
			log.Printf("HandleUserLogin: unexpected response type %T", result)
			s.respondError(w, utils.NewAppError(utils.ErrInternal, "Internal server error", nil))
			return
		}

		token, err := s.Tokens.Issue(user.ID)
		if err != nil {
			log.Printf("HandleUserLogin: failed to issue token: %v", err)
			s.respondError(w, utils.NewAppError(utils.ErrInternal, "Failed to issue token", err))
			return
		}

		s.respond(w, &api.LoginResponse{Token: token, User: user}, http.StatusOK)
	}
}
