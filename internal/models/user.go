package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID   `json:"id"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Email          string      `json:"email"`
	HashedPassword string      `json:"-"`
	PicturePath    string      `json:"picturePath"`
	Friends        []uuid.UUID `json:"friends"`
	Location       string      `json:"location"`
	Occupation     string      `json:"occupation"`
	ViewedProfile  int         `json:"viewedProfile"`
	Impressions    int         `json:"impressions"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// HasFriend reports whether friendID is in the user's friend set
func (u *User) HasFriend(friendID uuid.UUID) bool {
	for _, id := range u.Friends {
		if id == friendID {
			return true
		}
	}
	return false
}

// AddFriend appends friendID to the user's friend set
func (u *User) AddFriend(friendID uuid.UUID) {
	u.Friends = append(u.Friends, friendID)
}

// RemoveFriend removes every occurrence of friendID from the user's friend set
func (u *User) RemoveFriend(friendID uuid.UUID) {
	filtered := u.Friends[:0]
	for _, id := range u.Friends {
		if id != friendID {
			filtered = append(filtered, id)
		}
	}
	u.Friends = filtered
}

// FriendSummary is the public-safe projection of a user returned by friend
// listings. The password hash and engagement counters are never included.
type FriendSummary struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Occupation  string    `json:"occupation"`
	Location    string    `json:"location"`
	PicturePath string    `json:"picturePath"`
}

// Summary projects the user into its public-safe friend representation
func (u *User) Summary() FriendSummary {
	return FriendSummary{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Occupation:  u.Occupation,
		Location:    u.Location,
		PicturePath: u.PicturePath,
	}
}
