package cafe

import (
	"context"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type ListInput struct {
	Query  string
	Sort   domain.SortMode
	Origin *domain.Point
}

type ListCafes struct {
	repo domain.Repository
}

func NewListCafes(repo domain.Repository) *ListCafes {
	return &ListCafes{repo: repo}
}

func (uc *ListCafes) Execute(ctx context.Context, in ListInput) ([]domain.Listing, error) {
	cafes, err := uc.repo.ListCafes(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := uc.repo.ReviewStats(ctx)
	if err != nil {
		return nil, err
	}

	listings := domain.BuildListings(cafes, stats, in.Origin)
	listings = domain.Search(listings, in.Query)
	return domain.Rank(listings, in.Sort), nil
}

// ListAdminCafes feeds the admin table: every cafe, ordered by id.
type ListAdminCafes struct {
	repo domain.Repository
}

func NewListAdminCafes(repo domain.Repository) *ListAdminCafes {
	return &ListAdminCafes{repo: repo}
}

func (uc *ListAdminCafes) Execute(ctx context.Context) ([]models.Cafe, error) {
	return uc.repo.ListCafes(ctx)
}
