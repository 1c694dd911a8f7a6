package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SimConfig struct {
	NumUsers        int
	SimulationTime  time.Duration
	PostFrequency   float64 // posts per user per minute
	LikeFrequency   float64 // like toggles per user per minute
	FriendFrequency float64 // friend toggles per user per minute
	ServerURL       string
}

type SimulationStats struct {
	mu              sync.RWMutex
	StartTime       time.Time
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalUsers      int
	TotalPosts      int
	TotalLikes      int
	TotalFriendOps  int
}

// SimulatedUser tracks one registered user and its session token
type SimulatedUser struct {
	ID      uuid.UUID
	Email   string
	Token   string
	Posts   []uuid.UUID
	Friends map[uuid.UUID]bool
}

type Simulator struct {
	config SimConfig
	stats  *SimulationStats
	users  []*SimulatedUser
	posts  []uuid.UUID
	client *http.Client
	mu     sync.RWMutex
}

func NewSimulator(config SimConfig) *Simulator {
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime: time.Now(),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting simulation...")

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulatePosts(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateLikes(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateFriendToggles(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) initialize(ctx context.Context) error {
	log.Printf("Phase 1: Registering %d users...", s.config.NumUsers)

	for i := 0; i < s.config.NumUsers; i++ {
		user := &SimulatedUser{
			Email:   fmt.Sprintf("user_%d@test.com", i),
			Friends: make(map[uuid.UUID]bool),
		}

		if err := s.registerAndLogin(ctx, user, i); err != nil {
			log.Printf("Failed to set up user %s: %v", user.Email, err)
			continue
		}

		s.mu.Lock()
		s.users = append(s.users, user)
		s.mu.Unlock()
	}

	s.stats.mu.Lock()
	s.stats.TotalUsers = len(s.users)
	s.stats.mu.Unlock()

	if len(s.users) == 0 {
		return fmt.Errorf("no users could be registered")
	}

	log.Printf("Initialization completed with %d users", len(s.users))
	return nil
}

func (s *Simulator) registerAndLogin(ctx context.Context, user *SimulatedUser, n int) error {
	registerBody := map[string]interface{}{
		"firstName":  fmt.Sprintf("Sim%d", n),
		"lastName":   "User",
		"email":      user.Email,
		"password":   "testpass123",
		"location":   "Gainesville, FL",
		"occupation": "Load Generator",
	}

	if _, err := s.makeRequest(ctx, "POST", "/auth/register", "", registerBody); err != nil {
		return err
	}

	loginBody := map[string]string{
		"email":    user.Email,
		"password": "testpass123",
	}

	respBody, err := s.makeRequest(ctx, "POST", "/auth/login", "", loginBody)
	if err != nil {
		return err
	}

	var loginResp struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(respBody, &loginResp); err != nil {
		return fmt.Errorf("failed to parse login response: %v", err)
	}

	user.ID = loginResp.User.ID
	user.Token = loginResp.Token
	return nil
}

func (s *Simulator) simulatePosts(ctx context.Context) {
	interval := frequencyToInterval(s.config.PostFrequency, len(s.users))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			user := s.randomUser()
			body := map[string]string{
				"userId":      user.ID.String(),
				"description": fmt.Sprintf("Post from %s at %s", user.Email, time.Now().Format(time.RFC3339)),
			}

			respBody, err := s.makeRequest(ctx, "POST", "/post", user.Token, body)
			if err != nil {
				continue
			}

			var posts []struct {
				ID uuid.UUID `json:"id"`
			}
			if err := json.Unmarshal(respBody, &posts); err != nil || len(posts) == 0 {
				continue
			}

			s.mu.Lock()
			s.posts = append(s.posts, posts[0].ID)
			s.mu.Unlock()

			s.stats.mu.Lock()
			s.stats.TotalPosts++
			s.stats.mu.Unlock()
		}
	}
}

func (s *Simulator) simulateLikes(ctx context.Context) {
	interval := frequencyToInterval(s.config.LikeFrequency, len(s.users))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			postID, ok := s.randomPost()
			if !ok {
				continue
			}
			user := s.randomUser()

			body := map[string]string{
				"postId": postID.String(),
				"userId": user.ID.String(),
			}

			if _, err := s.makeRequest(ctx, "PATCH", "/post/like", user.Token, body); err != nil {
				continue
			}

			s.stats.mu.Lock()
			s.stats.TotalLikes++
			s.stats.mu.Unlock()
		}
	}
}

func (s *Simulator) simulateFriendToggles(ctx context.Context) {
	interval := frequencyToInterval(s.config.FriendFrequency, len(s.users))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			user := s.randomUser()
			friend := s.randomUser()
			if user.ID == friend.ID {
				continue
			}

			body := map[string]string{
				"userId":   user.ID.String(),
				"friendId": friend.ID.String(),
			}

			if _, err := s.makeRequest(ctx, "PATCH", "/user/friend", user.Token, body); err != nil {
				continue
			}

			s.stats.mu.Lock()
			s.stats.TotalFriendOps++
			s.stats.mu.Unlock()
		}
	}
}

func (s *Simulator) randomUser() *SimulatedUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[rand.Intn(len(s.users))]
}

func (s *Simulator) randomPost() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.posts) == 0 {
		return uuid.Nil, false
	}
	return s.posts[rand.Intn(len(s.posts))], true
}

func (s *Simulator) makeRequest(ctx context.Context, method, path, token string, body interface{}) ([]byte, error) {
	s.stats.mu.Lock()
	s.stats.TotalRequests++
	s.stats.mu.Unlock()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, s.config.ServerURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.recordFailure()
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.recordFailure()
		return nil, err
	}

	if resp.StatusCode >= 400 {
		s.recordFailure()
		return nil, fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, respBody)
	}

	s.stats.mu.Lock()
	s.stats.SuccessRequests++
	s.stats.mu.Unlock()
	return respBody, nil
}

func (s *Simulator) recordFailure() {
	s.stats.mu.Lock()
	s.stats.FailedRequests++
	s.stats.mu.Unlock()
}

// SimSummary is a lock-free copy of the simulation statistics
type SimSummary struct {
	StartTime       time.Time
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalUsers      int
	TotalPosts      int
	TotalLikes      int
	TotalFriendOps  int
}

// GetStats returns a copy of the current simulation statistics
func (s *Simulator) GetStats() SimSummary {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()
	return SimSummary{
		StartTime:       s.stats.StartTime,
		TotalRequests:   s.stats.TotalRequests,
		SuccessRequests: s.stats.SuccessRequests,
		FailedRequests:  s.stats.FailedRequests,
		TotalUsers:      s.stats.TotalUsers,
		TotalPosts:      s.stats.TotalPosts,
		TotalLikes:      s.stats.TotalLikes,
		TotalFriendOps:  s.stats.TotalFriendOps,
	}
}

func frequencyToInterval(perUserPerMinute float64, numUsers int) time.Duration {
	if perUserPerMinute <= 0 || numUsers == 0 {
		return time.Minute
	}
	perSecond := perUserPerMinute * float64(numUsers) / 60.0
	return time.Duration(float64(time.Second) / perSecond)
}
