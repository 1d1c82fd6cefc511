package repositories

import (
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID string) ([]models.CommentWithAuthor, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPostID retrieves a post's comments, newest first, with the
// author's display name joined in.
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.CommentWithAuthor, error) {
	var comments []models.CommentWithAuthor
	err := r.db.Model(&models.Comment{}).
		Select("comments.id, comments.post_id, comments.user_id, comments.text, comments.created_at, users.name AS author_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
