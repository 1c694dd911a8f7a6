package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`

	// Author fields are snapshotted at creation time and intentionally
	// not kept in sync with later profile edits.
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Location        string `json:"location"`
	UserPicturePath string `json:"userPicturePath"`

	Description string          `json:"description"`
	PicturePath string          `json:"picturePath"`
	Likes       map[string]bool `json:"likes"`    // Map of userID to like marker, semantically a set
	Comments    []string        `json:"comments"` // Append-only
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsLikedBy reports whether the given user has liked the post
func (p *Post) IsLikedBy(userID uuid.UUID) bool {
	return p.Likes[userID.String()]
}

// ToggleLike flips the user's like marker and returns the new state.
// Calling twice restores the original like map.
func (p *Post) ToggleLike(userID uuid.UUID) bool {
	if p.Likes == nil {
		p.Likes = make(map[string]bool)
	}
	key := userID.String()
	if p.Likes[key] {
		delete(p.Likes, key)
		return false
	}
	p.Likes[key] = true
	return true
}

// LikeCount returns the number of users that have liked the post
func (p *Post) LikeCount() int {
	return len(p.Likes)
}
