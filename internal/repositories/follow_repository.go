package repositories

import (
	"errors"
	"time"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-edge operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint) ([]models.FollowEdge, error)
	GetFollowing(userID uint) ([]models.FollowEdge, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a follow edge. A concurrent insert for the same
// (follower, following) pair loses against the composite unique index and
// surfaces as ErrDuplicate.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteFollow removes the follow edge for (followerID, followingID)
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether the follow edge exists
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// followRow is the flat scan target for the joined edge+user queries.
type followRow struct {
	ID        uint
	CreatedAt time.Time
	UserID    uint
	UserName  string
	UserEmail string
}

func (row followRow) toEdge() models.FollowEdge {
	return models.FollowEdge{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		User: models.PublicUser{
			ID:    row.UserID,
			Name:  row.UserName,
			Email: row.UserEmail,
		},
	}
}

// GetFollowers returns the users following userID, public fields joined in.
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.FollowEdge, error) {
	var rows []followRow
	err := r.db.Model(&models.Follow{}).
		Select("follows.id, follows.created_at, users.id AS user_id, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	edges := make([]models.FollowEdge, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, row.toEdge())
	}
	return edges, nil
}

// GetFollowing returns the users userID follows, public fields joined in.
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.FollowEdge, error) {
	var rows []followRow
	err := r.db.Model(&models.Follow{}).
		Select("follows.id, follows.created_at, users.id AS user_id, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = follows.following_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	edges := make([]models.FollowEdge, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, row.toEdge())
	}
	return edges, nil
}
