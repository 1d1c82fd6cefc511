package models

import "time"

// Follow is a directed edge between two users. The composite unique index
// guarantees at most one edge per (follower, following) pair.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowEdge pairs a follow relation with the counterpart user's public
// fields, for follower/following listings.
type FollowEdge struct {
	ID        uint       `json:"id"`
	User      PublicUser `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
}
