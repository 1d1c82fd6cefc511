package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) (int, error)
	DecrementLikes(ctx context.Context, id string) (int, error)
	IncrementComments(ctx context.Context, id string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

func objectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a post id", ErrInvalidID, id)
	}
	return objID, nil
}

// CreatePost inserts a new post with zeroed counters
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by its ObjectID hex
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPosts retrieves posts newest first with the total document count for
// pagination.
func (r *MongoPostRepository) GetPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdatePost persists caption and image changes
func (r *MongoPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"caption":    post.Caption,
			"image_url":  post.ImageURL,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post by its ObjectID hex
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementLikes atomically bumps the denormalized like counter and returns
// the new value.
func (r *MongoPostRepository) IncrementLikes(ctx context.Context, id string) (int, error) {
	objID, err := objectID(id)
	if err != nil {
		return 0, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"likes_count": 1}},
		opts,
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return post.LikesCount, nil
}

// DecrementLikes atomically lowers the denormalized like counter, floored at
// zero, and returns the new value. The $gt guard keeps a racing decrement
// from driving the counter negative.
func (r *MongoPostRepository) DecrementLikes(ctx context.Context, id string) (int, error) {
	objID, err := objectID(id)
	if err != nil {
		return 0, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "likes_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"likes_count": -1}},
		opts,
	).Decode(&post)
	if err == nil {
		return post.LikesCount, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}

	// No match: either the post is gone or the counter already sits at the
	// floor. Distinguish with a plain read.
	current, err := r.GetPostByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return current.LikesCount, nil
}

// IncrementComments atomically bumps the denormalized comment counter
func (r *MongoPostRepository) IncrementComments(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}
