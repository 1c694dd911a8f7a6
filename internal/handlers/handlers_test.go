package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bayou-social/internal/api"
	"bayou-social/internal/auth"
	"bayou-social/internal/database"
	"bayou-social/internal/engine"
	"bayou-social/internal/middleware"
	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) (*Server, *middleware.AuthGate) {
	t.Helper()

	store := database.NewMemStore()
	metrics := utils.NewMetricsCollector()
	tokens := auth.NewTokenService("test-secret", time.Hour)

	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, store, store, metrics)

	return NewServer(system, eng, metrics, tokens), middleware.NewAuthGate(tokens)
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestIntegrationFlow(t *testing.T) {
	server, gate := newTestServer(t)

	registerHandler := server.HandleUserRegistration()
	loginHandler := server.HandleUserLogin()
	friendHandler := gate.Protect(server.HandleAddRemoveFriend())
	friendsHandler := gate.Protect(server.HandleGetFriends())
	postHandler := gate.Protect(server.HandleCreatePost())
	feedHandler := gate.Protect(server.HandleGetFeed())
	likeHandler := gate.Protect(server.HandleToggleLike())

	// Step 1: Register two users
	w := doJSON(t, registerHandler, "POST", "/auth/register", "", RegisterUserRequest{
		FirstName:  "Alice",
		LastName:   "Gator",
		Email:      "a@x.com",
		Password:   "secret1",
		Location:   "Gainesville, FL",
		Occupation: "Biologist",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var userA models.User
	decodeJSON(t, w, &userA)
	assert.Equal(t, "a@x.com", userA.Email)
	t.Logf("User A created with ID: %s", userA.ID)

	w = doJSON(t, registerHandler, "POST", "/auth/register", "", RegisterUserRequest{
		FirstName: "Bob",
		LastName:  "Heron",
		Email:     "b@x.com",
		Password:  "secret2",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var userB models.User
	decodeJSON(t, w, &userB)

	// Registering the same email again conflicts
	w = doJSON(t, registerHandler, "POST", "/auth/register", "", RegisterUserRequest{
		Email:    "a@x.com",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Step 2: Login
	w = doJSON(t, loginHandler, "POST", "/auth/login", "", LoginRequest{
		Email:    "a@x.com",
		Password: "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResp utils.ErrorResponse
	decodeJSON(t, w, &errResp)
	assert.Equal(t, utils.ErrInvalidCredentials, errResp.Code)

	w = doJSON(t, loginHandler, "POST", "/auth/login", "", LoginRequest{
		Email:    "a@x.com",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var login api.LoginResponse
	decodeJSON(t, w, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, userA.ID, login.User.ID)

	// Step 3: The gate blocks requests without a usable token
	w = doJSON(t, feedHandler, "GET", "/posts/feed", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Step 4: Toggle friendship both ways
	w = doJSON(t, friendHandler, "PATCH", "/user/friend", login.Token, AddRemoveFriendRequest{
		UserID:   userA.ID.String(),
		FriendID: userB.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var friends []models.FriendSummary
	decodeJSON(t, w, &friends)
	if assert.Len(t, friends, 1) {
		assert.Equal(t, userB.ID, friends[0].ID)
	}

	w = doJSON(t, friendsHandler, "GET", "/user/friends?id="+userB.ID.String(), login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &friends)
	if assert.Len(t, friends, 1) {
		assert.Equal(t, userA.ID, friends[0].ID)
	}

	w = doJSON(t, friendHandler, "PATCH", "/user/friend", login.Token, AddRemoveFriendRequest{
		UserID:   userA.ID.String(),
		FriendID: userB.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &friends)
	assert.Empty(t, friends)

	// Step 5: An empty feed is a successful empty list
	w = doJSON(t, feedHandler, "GET", "/posts/feed", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var feed []*models.Post
	decodeJSON(t, w, &feed)
	assert.Empty(t, feed)

	// Step 6: Create a post and toggle a like on it
	w = doJSON(t, postHandler, "POST", "/post", login.Token, CreatePostRequest{
		UserID:      userA.ID.String(),
		Description: "hello swamp",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	decodeJSON(t, w, &feed)
	if !assert.Len(t, feed, 1) {
		return
	}
	postID := feed[0].ID
	assert.Equal(t, userA.FirstName, feed[0].FirstName)

	w = doJSON(t, likeHandler, "PATCH", "/post/like", login.Token, ToggleLikeRequest{
		PostID: postID.String(),
		UserID: userB.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var post models.Post
	decodeJSON(t, w, &post)
	assert.True(t, post.Likes[userB.ID.String()])

	w = doJSON(t, likeHandler, "PATCH", "/post/like", login.Token, ToggleLikeRequest{
		PostID: postID.String(),
		UserID: userB.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	post = models.Post{}
	decodeJSON(t, w, &post)
	assert.Empty(t, post.Likes)
}

func TestGetUserNotFound(t *testing.T) {
	server, gate := newTestServer(t)
	handler := gate.Protect(server.HandleGetUser())

	tokens := auth.NewTokenService("test-secret", time.Hour)
	token, err := tokens.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	w := doJSON(t, handler, "GET", "/user?id="+uuid.New().String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp utils.ErrorResponse
	decodeJSON(t, w, &errResp)
	assert.Equal(t, utils.ErrNotFound, errResp.Code)
}
