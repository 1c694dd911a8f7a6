package actors

import (
	"log"
	"time"

	stdctx "context"

	"bayou-social/internal/database"
	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for post operations
type (
	CreatePostMsg struct {
		UserID      uuid.UUID
		Description string
		PicturePath string
	}

	GetFeedMsg struct{}

	GetUserPostsMsg struct {
		UserID uuid.UUID
	}

	// ToggleLikeMsg flips the user's like marker on a post. Two calls in a
	// row restore the original like map.
	ToggleLikeMsg struct {
		PostID uuid.UUID
		UserID uuid.UUID
	}
)

// PostActor owns post creation, feeds and like toggles
type PostActor struct {
	posts   database.PostStore
	users   database.UserStore
	metrics *utils.MetricsCollector
}

func NewPostActor(posts database.PostStore, users database.UserStore, metrics *utils.MetricsCollector) actor.Actor {
	return &PostActor{
		posts:   posts,
		users:   users,
		metrics: metrics,
	}
}

func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *CreatePostMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		author, err := a.users.GetUser(ctx, msg.UserID)
		if err != nil {
			context.Respond(utils.NewNotFoundError("User not found"))
			return
		}

		// Author fields are copied at creation time and never re-synced
		// with later profile edits.
		post := &models.Post{
			ID:              uuid.New(),
			UserID:          author.ID,
			FirstName:       author.FirstName,
			LastName:        author.LastName,
			Location:        author.Location,
			UserPicturePath: author.PicturePath,
			Description:     msg.Description,
			PicturePath:     msg.PicturePath,
			Likes:           make(map[string]bool),
			Comments:        make([]string, 0),
			CreatedAt:       time.Now(),
		}

		if err := a.posts.InsertPost(ctx, post); err != nil {
			log.Printf("Failed to save post: %v", err)
			context.Respond(utils.NewAppError(utils.ErrDuplicate, "Failed to save post", err))
			return
		}

		// Respond with the full collection so clients get a fresh feed
		// without a second round trip.
		posts, err := a.posts.GetAllPosts(ctx)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch posts", err))
			return
		}

		a.metrics.AddOperationLatency("create_post", time.Since(startTime))
		context.Respond(posts)

	case *GetFeedMsg:
		ctx := stdctx.Background()

		posts, err := a.posts.GetAllPosts(ctx)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch posts", err))
			return
		}
		context.Respond(posts)

	case *GetUserPostsMsg:
		ctx := stdctx.Background()

		posts, err := a.posts.GetUserPosts(ctx, msg.UserID)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch posts", err))
			return
		}
		context.Respond(posts)

	case *ToggleLikeMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		post, err := a.posts.GetPost(ctx, msg.PostID)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrNotFound) {
				context.Respond(err)
				return
			}
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch post", err))
			return
		}

		post.ToggleLike(msg.UserID)

		// Only the likes field is written back, so a concurrently appended
		// comment cannot be clobbered by this update.
		updated, err := a.posts.UpdatePostLikes(ctx, msg.PostID, post.Likes)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrNotFound) {
				context.Respond(err)
				return
			}
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update likes", err))
			return
		}

		a.metrics.AddOperationLatency("toggle_like", time.Since(startTime))
		context.Respond(updated)
	}
}
