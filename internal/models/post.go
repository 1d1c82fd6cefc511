package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a social media post stored in MongoDB. LikesCount and
// CommentsCount are denormalized counters: the likes and comments tables in
// PostgreSQL are the source of truth, these fields are cached aggregates
// mutated with atomic $inc operations.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        uint               `json:"user_id" bson:"user_id"`
	Caption       string             `json:"caption" bson:"caption"`
	ImageURL      string             `json:"image_url" bson:"image_url"`
	LikesCount    int                `json:"likes" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
