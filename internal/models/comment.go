package models

import "gorm.io/gorm"

// Comment represents a comment on a post.
type Comment struct {
	gorm.Model
	PostID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null"`
	Content  string `gorm:"not null"`
	Likes    int    `gorm:"not null;default:0"`

	Author User `gorm:"foreignKey:AuthorID"`
}
