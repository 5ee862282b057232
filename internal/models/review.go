package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CafeID string `gorm:"size:36;not null;index" json:"cafe_id"`
	UserID string `gorm:"size:128;not null;index" json:"user_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ReviewAuthor is the reviewer projection attached to a review.
type ReviewAuthor struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// ReviewWithAuthor is a review joined with its author row, if any.
type ReviewWithAuthor struct {
	Review
	User *ReviewAuthor `json:"user"`
}
