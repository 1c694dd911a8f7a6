package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"bayou-social/internal/auth"
	"bayou-social/internal/config"
	"bayou-social/internal/database"
	"bayou-social/internal/engine"
	"bayou-social/internal/handlers"
	"bayou-social/internal/middleware"
	"bayou-social/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(context.Background())

	metrics := utils.NewMetricsCollector()
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gate := middleware.NewAuthGate(tokens)

	// Initialize actor system and engine
	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, db, db, metrics)

	server := handlers.NewServer(system, eng, metrics, tokens)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	mux := http.NewServeMux()

	route := func(path string, handler http.HandlerFunc, protected bool) {
		if protected {
			handler = gate.Protect(handler)
		}
		mux.HandleFunc(path, middleware.ApplyCORS(handler, corsConfig))
	}

	// Public routes
	route("/health", server.HandleHealth(), false)
	route("/auth/register", server.HandleUserRegistration(), false)
	route("/auth/login", server.HandleUserLogin(), false)

	// Routes behind the authorization gate
	route("/user", server.HandleGetUser(), true)
	route("/user/friends", server.HandleGetFriends(), true)
	route("/user/friend", server.HandleAddRemoveFriend(), true)
	route("/post", server.HandleCreatePost(), true)
	route("/posts/feed", server.HandleGetFeed(), true)
	route("/posts/user", server.HandleGetUserPosts(), true)
	route("/post/like", server.HandleToggleLike(), true)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
