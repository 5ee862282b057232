package cafe

import (
	"context"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type Detail struct {
	Cafe          models.Cafe  `json:"cafe"`
	ReviewCount   int          `json:"review_count"`
	AverageRating float64      `json:"average_rating"`
	MapsURL       string       `json:"maps_url,omitempty"`
	Share         domain.Share `json:"share"`
}

type GetCafe struct {
	repo    domain.Repository
	siteURL string
}

func NewGetCafe(repo domain.Repository, siteURL string) *GetCafe {
	return &GetCafe{repo: repo, siteURL: siteURL}
}

// Execute loads one cafe. pagePath is the site-relative path of the page
// being shared, e.g. /en/cafes/<id>.
func (uc *GetCafe) Execute(ctx context.Context, id, pagePath string) (*Detail, error) {
	cafe, err := uc.repo.GetCafe(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := uc.repo.CafeReviewStats(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Cafe:          *cafe,
		ReviewCount:   stats.Count,
		AverageRating: stats.Average(),
		MapsURL:       domain.MapsURL(cafe.Lat, cafe.Lng),
		Share: domain.NewShare(
			cafe.Name,
			cafe.ImageURL,
			uc.siteURL,
			domain.AbsoluteURL(uc.siteURL, pagePath),
		),
	}, nil
}
