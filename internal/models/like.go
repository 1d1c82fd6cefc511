package models

import "time"

// Like is a directed edge from a user to a post. The composite unique index
// guarantees at most one edge per (post, user) pair: a second insert for the
// same pair fails with gorm.ErrDuplicatedKey instead of creating a duplicate.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user"` // MongoDB ObjectID hex of the liked post
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_post_user"`
	CreatedAt time.Time `json:"created_at"`
}
