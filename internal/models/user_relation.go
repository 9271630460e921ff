package models

import "time"

// FriendshipStatus defines the state of a relationship between two users.
type FriendshipStatus string

const (
	// StatusPending means a friend request has been sent but not yet accepted.
	// The row (FromUserID=requester, ToUserID=target) IS the pending request:
	// there is no separate request record to clean up on resolution.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted means the users are friends. An accepted friendship is
	// stored as TWO rows, one per direction, so that symmetry is visible at
	// the row level and either side can be queried without an OR clause.
	StatusAccepted FriendshipStatus = "accepted"
)

// UserRelation represents one directed edge between two users.
// The primary key is a composite of (FromUserID, ToUserID), which also
// guarantees at most one pending request per ordered pair.
type UserRelation struct {
	FromUserID uint             `gorm:"primaryKey"`
	ToUserID   uint             `gorm:"primaryKey"`
	Status     FriendshipStatus `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
