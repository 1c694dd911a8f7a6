// internal/database/user_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID             string    `bson:"_id"`            // MongoDB primary key
	FirstName      string    `bson:"firstName"`      // First name
	LastName       string    `bson:"lastName"`       // Last name
	Email          string    `bson:"email"`          // Email address, exact match, no normalization
	HashedPassword string    `bson:"hashedPassword"` // Hashed password
	PicturePath    string    `bson:"picturePath"`    // Profile picture path
	Friends        []string  `bson:"friends"`        // Friend user IDs
	Location       string    `bson:"location"`       // Location
	Occupation     string    `bson:"occupation"`     // Occupation
	ViewedProfile  int       `bson:"viewedProfile"`  // Profile view counter
	Impressions    int       `bson:"impressions"`    // Impression counter
	CreatedAt      time.Time `bson:"createdAt"`      // Account creation timestamp
}

func userToDocument(user *models.User) *UserDocument {
	doc := &UserDocument{
		ID:             user.ID.String(),
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		PicturePath:    user.PicturePath,
		Friends:        make([]string, len(user.Friends)),
		Location:       user.Location,
		Occupation:     user.Occupation,
		ViewedProfile:  user.ViewedProfile,
		Impressions:    user.Impressions,
		CreatedAt:      user.CreatedAt,
	}

	for i, friendID := range user.Friends {
		doc.Friends[i] = friendID.String()
	}

	return doc
}

func documentToUser(doc *UserDocument) (*models.User, error) {
	userID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	friends := make([]uuid.UUID, len(doc.Friends))
	for i, idStr := range doc.Friends {
		friendID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid friend ID in database: %v", err)
		}
		friends[i] = friendID
	}

	return &models.User{
		ID:             userID,
		FirstName:      doc.FirstName,
		LastName:       doc.LastName,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		PicturePath:    doc.PicturePath,
		Friends:        friends,
		Location:       doc.Location,
		Occupation:     doc.Occupation,
		ViewedProfile:  doc.ViewedProfile,
		Impressions:    doc.Impressions,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

// InsertUser creates a new user in MongoDB. A duplicate ID fails with DUPLICATE.
func (m *MongoDB) InsertUser(ctx context.Context, user *models.User) error {
	_, err := m.Users.InsertOne(ctx, userToDocument(user))
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrDuplicate, "User already exists", err)
	}
	return err
}

// SaveUser persists a full-record mutation (used for friend-list updates)
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": user.ID.String()}
	update := bson.M{"$set": userToDocument(user)}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetUser retrieves a user from MongoDB by their ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToUser(&doc)
}

// GetUserByEmail retrieves a user from MongoDB by their email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToUser(&doc)
}
