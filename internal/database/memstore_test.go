package database

import (
	"context"
	"testing"
	"time"

	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMemStoreUserLookup(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	user := &models.User{
		ID:        uuid.New(),
		FirstName: "Alice",
		Email:     "a@x.com",
		CreatedAt: time.Now(),
	}
	assert.NoError(t, store.InsertUser(ctx, user))

	// Duplicate insert conflicts
	err := store.InsertUser(ctx, user)
	assert.True(t, utils.IsErrorCode(err, utils.ErrDuplicate))

	byID, err := store.GetUser(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	byEmail, err := store.GetUserByEmail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	// Email matching is exact, no normalization
	_, err = store.GetUserByEmail(ctx, "A@x.com")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	_, err = store.GetUser(ctx, uuid.New())
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestMemStoreReturnsCopies(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Email: "a@x.com"}
	assert.NoError(t, store.InsertUser(ctx, user))

	loaded, err := store.GetUser(ctx, user.ID)
	assert.NoError(t, err)
	loaded.AddFriend(uuid.New())

	// Mutating a loaded record must not leak into the store
	again, err := store.GetUser(ctx, user.ID)
	assert.NoError(t, err)
	assert.Empty(t, again.Friends)
}

func TestMemStoreUpdatePostLikesLeavesOtherFieldsAlone(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	post := &models.Post{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Description: "original",
		Likes:       map[string]bool{},
		Comments:    []string{"first comment"},
		CreatedAt:   time.Now(),
	}
	assert.NoError(t, store.InsertPost(ctx, post))

	liker := uuid.New().String()
	updated, err := store.UpdatePostLikes(ctx, post.ID, map[string]bool{liker: true})
	assert.NoError(t, err)
	assert.Equal(t, map[string]bool{liker: true}, updated.Likes)
	assert.Equal(t, "original", updated.Description)
	assert.Equal(t, []string{"first comment"}, updated.Comments)

	_, err = store.UpdatePostLikes(ctx, uuid.New(), nil)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}
