package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	FirstName    string `gorm:"size:255;not null"`
	LastName     string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	ProfileURL   string `gorm:"size:512"`

	Posts []Post `gorm:"foreignKey:AuthorID"`
}
