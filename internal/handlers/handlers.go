package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"bayou-social/internal/auth"
	"bayou-social/internal/engine"
	"bayou-social/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Tokens         *auth.TokenService
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	tokens *auth.TokenService,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		Tokens:         tokens,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// ask sends a message to an actor and waits for the response
func (s *Server) ask(pid *actor.PID, msg interface{}, actorName string) (interface{}, *utils.AppError) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewActorTimeoutError(actorName)
	}
	return result, nil
}

// respond writes the actor result as JSON, mapping AppError results to their
// HTTP status and error body
func (s *Server) respond(w http.ResponseWriter, result interface{}, successStatus int) {
	s.Metrics.IncrementRequests()

	if appErr, ok := result.(*utils.AppError); ok {
		s.Metrics.IncrementErrors()
		utils.WriteHTTPError(w, appErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successStatus)
	json.NewEncoder(w).Encode(result)
}

func (s *Server) respondError(w http.ResponseWriter, appErr *utils.AppError) {
	s.Metrics.IncrementRequests()
	s.Metrics.IncrementErrors()
	utils.WriteHTTPError(w, appErr)
}

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"server_time": time.Now(),
			"metrics":     s.Metrics.Snapshot(),
		})
	}
}
