package models

import "gorm.io/gorm"

// Post represents a post on a user's timeline.
type Post struct {
	gorm.Model
	AuthorID uint   `gorm:"not null;index"`
	Content  string `gorm:"not null"`
	ImageURL string `gorm:"size:512"`
	Likes    int    `gorm:"not null;default:0"`

	Author   User      `gorm:"foreignKey:AuthorID"`
	Comments []Comment `gorm:"foreignKey:PostID"`
}
