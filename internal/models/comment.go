package models

import "time"

// Comment is a comment on a post, stored in PostgreSQL and keyed to the
// post's MongoDB ObjectID.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment joined with its author's display name.
type CommentWithAuthor struct {
	ID         uint      `json:"id"`
	PostID     string    `json:"post_id"`
	UserID     uint      `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
