package review

import (
	"context"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/domain/user"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type Item struct {
	models.ReviewWithAuthor
	AuthorName string `json:"author_name"`
	CanEdit    bool   `json:"can_edit"`
}

type Page struct {
	Reviews []Item         `json:"reviews"`
	Summary domain.Summary `json:"summary"`
}

type ListReviews struct {
	repo domain.Repository
}

func NewListReviews(repo domain.Repository) *ListReviews {
	return &ListReviews{repo: repo}
}

// Execute returns the cafe's reviews newest first. viewerID may be empty for
// anonymous visitors, who can edit nothing.
func (uc *ListReviews) Execute(ctx context.Context, cafeID, viewerID string) (*Page, error) {
	rows, err := uc.repo.ReviewsWithAuthors(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	page := &Page{Reviews: make([]Item, 0, len(rows))}
	ratings := make([]int, 0, len(rows))
	for _, r := range rows {
		page.Reviews = append(page.Reviews, Item{
			ReviewWithAuthor: r,
			AuthorName:       user.DisplayName(r.User),
			CanEdit:          domain.CanModify(viewerID, r.UserID),
		})
		ratings = append(ratings, r.Rating)
	}
	page.Summary = domain.Summarize(ratings)
	return page, nil
}
