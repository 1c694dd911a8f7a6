package actors

import (
	stdctx "context"
	"testing"
	"time"

	"bayou-social/internal/database"
	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func spawnPostActor(t *testing.T) (*actor.ActorSystem, *actor.PID, *database.MemStore) {
	t.Helper()

	system := actor.NewActorSystem()
	store := database.NewMemStore()
	metrics := utils.NewMetricsCollector()

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewPostActor(store, store, metrics)
	})
	pid := system.Root.Spawn(props)
	return system, pid, store
}

func seedUser(t *testing.T, store *database.MemStore) *models.User {
	t.Helper()

	user := &models.User{
		ID:          uuid.New(),
		FirstName:   "Gator",
		LastName:    "Gal",
		Email:       "gator@x.com",
		PicturePath: "p/gator.jpg",
		Friends:     make([]uuid.UUID, 0),
		Location:    "Gainesville, FL",
		Occupation:  "Biologist",
		CreatedAt:   time.Now(),
	}
	if err := store.InsertUser(stdctx.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func createPost(t *testing.T, system *actor.ActorSystem, pid *actor.PID, userID uuid.UUID, description string) []*models.Post {
	t.Helper()

	future := system.Root.RequestFuture(pid, &CreatePostMsg{
		UserID:      userID,
		Description: description,
		PicturePath: "p/post.jpg",
	}, 10*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Create post failed: %v", err)
	}

	posts, ok := result.([]*models.Post)
	if !ok {
		t.Fatalf("Unexpected create post response: %#v", result)
	}
	return posts
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	system, pid, store := spawnPostActor(t)
	user := seedUser(t, store)

	posts := createPost(t, system, pid, user.ID, "first post")
	if !assert.Len(t, posts, 1) {
		return
	}

	post := posts[0]
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, user.FirstName, post.FirstName)
	assert.Equal(t, user.LastName, post.LastName)
	assert.Equal(t, user.Location, post.Location)
	assert.Equal(t, user.PicturePath, post.UserPicturePath)
	assert.Equal(t, "first post", post.Description)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	system, pid, _ := spawnPostActor(t)

	future := system.Root.RequestFuture(pid, &CreatePostMsg{
		UserID:      uuid.New(),
		Description: "ghost post",
	}, 10*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Create post request failed: %v", err)
	}

	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected an error response, got %#v", result)
	}
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestEmptyFeedIsNotAnError(t *testing.T) {
	system, pid, _ := spawnPostActor(t)

	future := system.Root.RequestFuture(pid, &GetFeedMsg{}, 10*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Get feed failed: %v", err)
	}

	posts, ok := result.([]*models.Post)
	if !ok {
		t.Fatalf("Unexpected feed response: %#v", result)
	}
	assert.Empty(t, posts)
}

func TestGetUserPosts(t *testing.T) {
	system, pid, store := spawnPostActor(t)
	user := seedUser(t, store)

	createPost(t, system, pid, user.ID, "one")
	createPost(t, system, pid, user.ID, "two")

	future := system.Root.RequestFuture(pid, &GetUserPostsMsg{UserID: user.ID}, 10*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Get user posts failed: %v", err)
	}

	posts, ok := result.([]*models.Post)
	if !ok {
		t.Fatalf("Unexpected response: %#v", result)
	}
	assert.Len(t, posts, 2)

	// A user with no posts gets an empty list, not an error
	future = system.Root.RequestFuture(pid, &GetUserPostsMsg{UserID: uuid.New()}, 10*time.Second)
	result, err = future.Result()
	if err != nil {
		t.Fatalf("Get user posts failed: %v", err)
	}
	posts, ok = result.([]*models.Post)
	if !ok {
		t.Fatalf("Unexpected response: %#v", result)
	}
	assert.Empty(t, posts)
}

func toggleLike(t *testing.T, system *actor.ActorSystem, pid *actor.PID, postID, userID uuid.UUID) *models.Post {
	t.Helper()

	future := system.Root.RequestFuture(pid, &ToggleLikeMsg{
		PostID: postID,
		UserID: userID,
	}, 10*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Toggle like failed: %v", err)
	}

	post, ok := result.(*models.Post)
	if !ok {
		t.Fatalf("Unexpected toggle like response: %#v", result)
	}
	return post
}

func TestLikeToggleScenario(t *testing.T) {
	system, pid, store := spawnPostActor(t)
	user := seedUser(t, store)
	posts := createPost(t, system, pid, user.ID, "likeable")
	postID := posts[0].ID

	user1 := uuid.New()
	user2 := uuid.New()

	post := toggleLike(t, system, pid, postID, user1)
	assert.Equal(t, map[string]bool{user1.String(): true}, post.Likes)

	post = toggleLike(t, system, pid, postID, user2)
	assert.Equal(t, map[string]bool{user1.String(): true, user2.String(): true}, post.Likes)

	post = toggleLike(t, system, pid, postID, user1)
	assert.Equal(t, map[string]bool{user2.String(): true}, post.Likes)
}

func TestLikeToggleInvolution(t *testing.T) {
	system, pid, store := spawnPostActor(t)
	user := seedUser(t, store)
	posts := createPost(t, system, pid, user.ID, "toggle twice")
	postID := posts[0].ID

	liker := uuid.New()
	toggleLike(t, system, pid, postID, liker)
	post := toggleLike(t, system, pid, postID, liker)
	assert.Empty(t, post.Likes)
}

func TestLikeToggleUnknownPost(t *testing.T) {
	system, pid, _ := spawnPostActor(t)

	future := system.Root.RequestFuture(pid, &ToggleLikeMsg{
		PostID: uuid.New(),
		UserID: uuid.New(),
	}, 10*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("Toggle like request failed: %v", err)
	}

	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected an error response, got %#v", result)
	}
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}
