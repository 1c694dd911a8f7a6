package handlers

import (
	"encoding/json"
	"net/http"

	"bayou-social/internal/engine/actors"
	"bayou-social/internal/utils"

	"github.com/google/uuid"
)

// AddRemoveFriendRequest represents a request to toggle a friendship edge
type AddRemoveFriendRequest struct {
	UserID   string `json:"userId"`
	FriendID string `json:"friendId"`
}

// HandleGetUser handles requests to fetch a user record by ID
func (s *Server) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, appErr := parseIDParam(r, "id")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.GetUserMsg{UserID: userID}, "user")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleGetFriends handles requests to list a user's friends as public-safe
// projections
func (s *Server) HandleGetFriends() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, appErr := parseIDParam(r, "id")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.GetFriendsMsg{UserID: userID}, "user")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleAddRemoveFriend handles requests to toggle the friendship edge
// between two users and returns the caller's updated friend projections
func (s *Server) HandleAddRemoveFriend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req AddRemoveFriendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request", err))
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid userId format", err))
			return
		}

		friendID, err := uuid.Parse(req.FriendID)
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid friendId format", err))
			return
		}

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.AddRemoveFriendMsg{
			UserID:   userID,
			FriendID: friendID,
		}, "user")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// parseIDParam extracts and parses a UUID query parameter
func parseIDParam(r *http.Request, name string) (uuid.UUID, *utils.AppError) {
	idStr := r.URL.Query().Get(name)
	if idStr == "" {
		return uuid.Nil, utils.NewAppError(utils.ErrInvalidInput, name+" parameter is required", nil)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, utils.NewAppError(utils.ErrInvalidInput, "Invalid "+name+" format", err)
	}
	return id, nil
}
