package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Cafe struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"type:text;not null" json:"image_url"`
	Location    string `gorm:"size:255" json:"location"`

	// Public URLs of the objects stored under the cafe's gallery folder.
	GalleryURLs datatypes.JSONSlice[string] `json:"gallery_urls"`

	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cafe) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.GalleryURLs == nil {
		c.GalleryURLs = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (c *Cafe) HasCoordinates() bool {
	return c.Lat != nil && c.Lng != nil
}
