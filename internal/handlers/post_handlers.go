package handlers

import (
	"encoding/json"
	"net/http"

	"bayou-social/internal/engine/actors"
	"bayou-social/internal/utils"

	"github.com/google/uuid"
)

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	UserID      string `json:"userId"`      // Author ID (UUID as string)
	Description string `json:"description"` // Post text
	PicturePath string `json:"picturePath"` // Optional picture path
}

// ToggleLikeRequest represents a request to toggle a like on a post
type ToggleLikeRequest struct {
	PostID string `json:"postId"`
	UserID string `json:"userId"`
}

// HandleCreatePost handles requests to create a new post. The response is the
// full post collection, so clients get a fresh feed without a second request.
func (s *Server) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request", err))
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid userId format", err))
			return
		}

		if req.Description == "" {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Description is required", nil))
			return
		}

		result, appErr := s.ask(s.Engine.GetPostActor(), &actors.CreatePostMsg{
			UserID:      userID,
			Description: req.Description,
			PicturePath: req.PicturePath,
		}, "post")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusCreated)
	}
}

// HandleGetFeed handles requests for the global post feed. An empty feed is a
// successful empty list, not an error.
func (s *Server) HandleGetFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		result, appErr := s.ask(s.Engine.GetPostActor(), &actors.GetFeedMsg{}, "post")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleGetUserPosts handles requests for all posts authored by one user
func (s *Server) HandleGetUserPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, appErr := parseIDParam(r, "userId")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetPostActor(), &actors.GetUserPostsMsg{UserID: userID}, "post")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleToggleLike handles requests to flip a user's like marker on a post
func (s *Server) HandleToggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ToggleLikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid request", err))
			return
		}

		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid postId format", err))
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			s.respondError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid userId format", err))
			return
		}

		result, appErr := s.ask(s.Engine.GetPostActor(), &actors.ToggleLikeMsg{
			PostID: postID,
			UserID: userID,
		}, "post")
		if appErr != nil {
			s.respondError(w, appErr)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}
