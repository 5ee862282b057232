package models

import "time"

// User.ID is the identity provider subject.
type User struct {
	ID string `gorm:"primaryKey;size:128" json:"id"`

	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName string `gorm:"size:150" json:"full_name"`
	Image    string `gorm:"type:text" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
