package actors

import (
	"log"
	"math/rand"
	"time"

	stdctx "context"

	"bayou-social/internal/auth"
	"bayou-social/internal/database"
	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for user operations
type (
	RegisterUserMsg struct {
		FirstName   string
		LastName    string
		Email       string
		Password    string
		PicturePath string
		Location    string
		Occupation  string
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	GetUserMsg struct {
		UserID uuid.UUID
	}

	GetFriendsMsg struct {
		UserID uuid.UUID
	}

	// AddRemoveFriendMsg toggles the friendship edge between two users.
	// The edge is written on both sides in one logical operation.
	AddRemoveFriendMsg struct {
		UserID   uuid.UUID
		FriendID uuid.UUID
	}
)

// UserActor owns identity and social graph operations. All friend mutations
// flow through this actor, so two requests never interleave inside one toggle.
type UserActor struct {
	store   database.UserStore
	metrics *utils.MetricsCollector
}

func NewUserActor(store database.UserStore, metrics *utils.MetricsCollector) actor.Actor {
	return &UserActor{
		store:   store,
		metrics: metrics,
	}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		// Check if email is already registered
		existingUser, _ := a.store.GetUserByEmail(ctx, msg.Email)
		if existingUser != nil {
			log.Printf("Email already registered: %s", msg.Email)
			context.Respond(utils.NewAppError(utils.ErrDuplicate, "Email already registered", nil))
			return
		}

		hashedPassword, err := auth.HashPassword(msg.Password)
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrInternal, "Failed to hash password", err))
			return
		}

		user := &models.User{
			ID:             uuid.New(),
			FirstName:      msg.FirstName,
			LastName:       msg.LastName,
			Email:          msg.Email,
			HashedPassword: hashedPassword,
			PicturePath:    msg.PicturePath,
			Friends:        make([]uuid.UUID, 0),
			Location:       msg.Location,
			Occupation:     msg.Occupation,
			ViewedProfile:  rand.Intn(10000),
			Impressions:    rand.Intn(10000),
			CreatedAt:      time.Now(),
		}

		if err := a.store.InsertUser(ctx, user); err != nil {
			log.Printf("Failed to save user: %v", err)
			if utils.IsErrorCode(err, utils.ErrDuplicate) {
				context.Respond(err)
				return
			}
			context.Respond(utils.NewAppError(utils.ErrDuplicate, "Failed to save user", err))
			return
		}

		a.metrics.AddOperationLatency("register_user", time.Since(startTime))
		context.Respond(user)

	case *LoginMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		user, err := a.store.GetUserByEmail(ctx, msg.Email)
		if err != nil {
			log.Printf("Login failed - user lookup: %v", err)
			context.Respond(utils.NewInvalidCredentialsError())
			return
		}

		match, err := auth.CheckPassword(msg.Password, user.HashedPassword)
		if err != nil {
			log.Printf("Login failed - corrupt password digest for %s: %v", user.ID, err)
			context.Respond(utils.NewAppError(utils.ErrInternal, "Authentication error", err))
			return
		}
		if !match {
			context.Respond(utils.NewInvalidCredentialsError())
			return
		}

		a.metrics.AddOperationLatency("login", time.Since(startTime))
		context.Respond(user)

	case *GetUserMsg:
		ctx := stdctx.Background()

		user, err := a.store.GetUser(ctx, msg.UserID)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrNotFound) {
				context.Respond(err)
				return
			}
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch user", err))
			return
		}
		context.Respond(user)

	case *GetFriendsMsg:
		ctx := stdctx.Background()

		user, err := a.store.GetUser(ctx, msg.UserID)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrNotFound) {
				context.Respond(err)
				return
			}
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch user", err))
			return
		}
		context.Respond(a.projectFriends(ctx, user))

	case *AddRemoveFriendMsg:
		startTime := time.Now()
		ctx := stdctx.Background()

		user, err := a.store.GetUser(ctx, msg.UserID)
		if err != nil {
			context.Respond(utils.NewNotFoundError("User not found"))
			return
		}

		// A user toggling themselves mutates a single record; writing it
		// twice from two loaded copies would depend on write order.
		if msg.UserID == msg.FriendID {
			if user.HasFriend(msg.FriendID) {
				user.RemoveFriend(msg.FriendID)
			} else {
				user.AddFriend(msg.FriendID)
			}
			if err := a.store.SaveUser(ctx, user); err != nil {
				context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save user", err))
				return
			}
			a.metrics.AddOperationLatency("toggle_friend", time.Since(startTime))
			context.Respond(a.projectFriends(ctx, user))
			return
		}

		friend, err := a.store.GetUser(ctx, msg.FriendID)
		if err != nil {
			context.Respond(utils.NewNotFoundError("Friend not found"))
			return
		}

		// Toggle the edge on both sides so presence is identical from
		// either endpoint once both writes land.
		if user.HasFriend(msg.FriendID) {
			user.RemoveFriend(msg.FriendID)
			friend.RemoveFriend(msg.UserID)
		} else {
			user.AddFriend(msg.FriendID)
			friend.AddFriend(msg.UserID)
		}

		if err := a.store.SaveUser(ctx, user); err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save user", err))
			return
		}
		// If this second save fails the graph is left asymmetric; there is
		// no cross-document transaction to roll back with.
		if err := a.store.SaveUser(ctx, friend); err != nil {
			log.Printf("Friend-side save failed, graph may be asymmetric: %v", err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save friend", err))
			return
		}

		a.metrics.AddOperationLatency("toggle_friend", time.Since(startTime))
		context.Respond(a.projectFriends(ctx, user))
	}
}

// projectFriends resolves each friend ID to its public-safe summary.
// A dangling friend ID is logged and skipped rather than failing the list.
func (a *UserActor) projectFriends(ctx stdctx.Context, user *models.User) []models.FriendSummary {
	friends := make([]models.FriendSummary, 0, len(user.Friends))
	for _, friendID := range user.Friends {
		friend, err := a.store.GetUser(ctx, friendID)
		if err != nil {
			log.Printf("Error resolving friend %s of user %s: %v", friendID, user.ID, err)
			continue
		}
		friends = append(friends, friend.Summary())
	}
	return friends
}
