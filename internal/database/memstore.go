// internal/database/memstore.go
package database

import (
	"context"
	"sort"
	"sync"

	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/google/uuid"
)

// MemStore keeps user and post records in process memory. It implements
// UserStore and PostStore for tests and for running without MongoDB.
type MemStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
	posts map[uuid.UUID]*models.Post
}

func NewMemStore() *MemStore {
	return &MemStore{
		users: make(map[uuid.UUID]*models.User),
		posts: make(map[uuid.UUID]*models.Post),
	}
}

func cloneUser(user *models.User) *models.User {
	if user == nil {
		return nil
	}
	c := *user
	c.Friends = append([]uuid.UUID(nil), user.Friends...)
	return &c
}

func clonePost(post *models.Post) *models.Post {
	if post == nil {
		return nil
	}
	c := *post
	c.Comments = append([]string(nil), post.Comments...)
	c.Likes = make(map[string]bool, len(post.Likes))
	for k, v := range post.Likes {
		c.Likes[k] = v
	}
	return &c
}

func (s *MemStore) InsertUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.ID]; exists {
		return utils.NewAppError(utils.ErrDuplicate, "User already exists", nil)
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *MemStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "User not found", nil)
	}
	return cloneUser(user), nil
}

func (s *MemStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, utils.NewAppError(utils.ErrNotFound, "User not found", nil)
}

func (s *MemStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *MemStore) InsertPost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.posts[post.ID]; exists {
		return utils.NewAppError(utils.ErrDuplicate, "Post already exists", nil)
	}
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *MemStore) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return clonePost(post), nil
}

func (s *MemStore) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, clonePost(post))
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (s *MemStore) GetUserPosts(ctx context.Context, userID uuid.UUID) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]*models.Post, 0)
	for _, post := range s.posts {
		if post.UserID == userID {
			posts = append(posts, clonePost(post))
		}
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (s *MemStore) UpdatePostLikes(ctx context.Context, postID uuid.UUID, likes map[string]bool) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	post.Likes = make(map[string]bool, len(likes))
	for k, v := range likes {
		post.Likes[k] = v
	}
	return clonePost(post), nil
}

func sortPostsNewestFirst(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
