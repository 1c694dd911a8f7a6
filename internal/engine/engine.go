package engine

import (
	"bayou-social/internal/database"
	"bayou-social/internal/engine/actors"
	"bayou-social/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	userActor *actor.PID
	postActor *actor.PID
}

func NewEngine(system *actor.ActorSystem, users database.UserStore, posts database.PostStore, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(users, metrics)
	})
	userPID := context.Spawn(userProps)

	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(posts, users, metrics)
	})
	postPID := context.Spawn(postProps)

	return &Engine{
		userActor: userPID,
		postActor: postPID,
	}
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}

// GetPostActor returns the PID of the post actor
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}
