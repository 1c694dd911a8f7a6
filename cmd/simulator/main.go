package main

import (
	"context"
	"log"
	"time"

	"bayou-social/simulator"
)

func main() {
	config := simulator.SimConfig{
		NumUsers:        10,
		SimulationTime:  5 * time.Minute,
		PostFrequency:   2.0,
		LikeFrequency:   6.0,
		FriendFrequency: 1.0,
		ServerURL:       "http://localhost:8080",
	}

	sim := simulator.NewSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Server URL: %s", config.ServerURL)
	log.Printf("- Number of users: %d", config.NumUsers)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Post frequency: %.2f posts/user/minute", config.PostFrequency)
	log.Printf("- Like frequency: %.2f likes/user/minute", config.LikeFrequency)
	log.Printf("- Friend frequency: %.2f toggles/user/minute", config.FriendFrequency)

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	stats := sim.GetStats()
	log.Printf("Simulation completed. Final stats:")
	log.Printf("- Total users: %d", stats.TotalUsers)
	log.Printf("- Total posts: %d", stats.TotalPosts)
	log.Printf("- Total like toggles: %d", stats.TotalLikes)
	log.Printf("- Total friend toggles: %d", stats.TotalFriendOps)
	log.Printf("- Requests: %d total, %d ok, %d failed",
		stats.TotalRequests, stats.SuccessRequests, stats.FailedRequests)
}
