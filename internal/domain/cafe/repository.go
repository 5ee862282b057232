package cafe

import (
	"context"

	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type Repository interface {
	ListCafes(ctx context.Context) ([]models.Cafe, error)
	GetCafe(ctx context.Context, id string) (*models.Cafe, error)

	CreateCafe(ctx context.Context, c *models.Cafe) error
	UpdateCafe(ctx context.Context, id string, fields CafeFields) error
	UpdateGallery(ctx context.Context, id string, urls []string) error

	// DeleteCafe removes the cafe together with its reviews.
	DeleteCafe(ctx context.Context, id string) error

	// ReviewStats aggregates ratings per cafe id.
	ReviewStats(ctx context.Context) (map[string]Stats, error)
	CafeReviewStats(ctx context.Context, cafeID string) (Stats, error)
}

// CafeFields is the set of columns an update writes.
type CafeFields struct {
	Name        string
	Description string
	ImageURL    string
	Location    string
	Lat         *float64
	Lng         *float64
}
