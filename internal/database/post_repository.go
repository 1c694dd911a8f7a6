// internal/database/post_repository.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"bayou-social/internal/models"
	"bayou-social/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument represents the MongoDB schema for a post.
type PostDocument struct {
	ID              string          `bson:"_id"`
	UserID          string          `bson:"userId"`
	FirstName       string          `bson:"firstName"`
	LastName        string          `bson:"lastName"`
	Location        string          `bson:"location"`
	UserPicturePath string          `bson:"userPicturePath"`
	Description     string          `bson:"description"`
	PicturePath     string          `bson:"picturePath"`
	Likes           map[string]bool `bson:"likes,omitempty"` // Map of userID to like marker
	Comments        []string        `bson:"comments"`
	CreatedAt       time.Time       `bson:"createdAt"`
}

func postToDocument(post *models.Post) *PostDocument {
	return &PostDocument{
		ID:              post.ID.String(),
		UserID:          post.UserID.String(),
		FirstName:       post.FirstName,
		LastName:        post.LastName,
		Location:        post.Location,
		UserPicturePath: post.UserPicturePath,
		Description:     post.Description,
		PicturePath:     post.PicturePath,
		Likes:           post.Likes,
		Comments:        post.Comments,
		CreatedAt:       post.CreatedAt,
	}
}

func documentToPost(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %v", err)
	}

	likes := doc.Likes
	if likes == nil {
		likes = make(map[string]bool)
	}

	return &models.Post{
		ID:              id,
		UserID:          userID,
		FirstName:       doc.FirstName,
		LastName:        doc.LastName,
		Location:        doc.Location,
		UserPicturePath: doc.UserPicturePath,
		Description:     doc.Description,
		PicturePath:     doc.PicturePath,
		Likes:           likes,
		Comments:        doc.Comments,
		CreatedAt:       doc.CreatedAt,
	}, nil
}

// InsertPost creates a new post in MongoDB
func (m *MongoDB) InsertPost(ctx context.Context, post *models.Post) error {
	_, err := m.Posts.InsertOne(ctx, postToDocument(post))
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrDuplicate, "Post already exists", err)
	}
	return err
}

// GetPost retrieves a post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToPost(&doc)
}

// GetAllPosts retrieves every post, newest first. An empty collection
// yields an empty slice, not an error.
func (m *MongoDB) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := m.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	return decodePosts(ctx, cursor)
}

// GetUserPosts retrieves all posts authored by the given user, newest first.
func (m *MongoDB) GetUserPosts(ctx context.Context, userID uuid.UUID) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := m.Posts.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	return decodePosts(ctx, cursor)
}

func decodePosts(ctx context.Context, cursor *mongo.Cursor) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding post document: %v", err)
			continue
		}

		post, err := documentToPost(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, nil
}

// UpdatePostLikes atomically replaces only the likes field of a post and
// returns the updated record. Concurrent mutations of other fields (such as
// an appended comment) are left untouched.
func (m *MongoDB) UpdatePostLikes(ctx context.Context, postID uuid.UUID, likes map[string]bool) (*models.Post, error) {
	filter := bson.M{"_id": postID.String()}
	update := bson.M{"$set": bson.M{"likes": likes}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc PostDocument
	err := m.Posts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, err
	}

	return documentToPost(&doc)
}
