package review

import (
	"context"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

var ErrLoginRequired = httperr.ErrBusinessMsg("login_required", "Please log in to submit a review")

type SubmitReview struct {
	repo    domain.Repository
	metrics *metrics.Metrics
}

func NewSubmitReview(repo domain.Repository, m *metrics.Metrics) *SubmitReview {
	return &SubmitReview{repo: repo, metrics: m}
}

// Execute inserts the review and returns it with the author as the session
// knows them; the users table is not read again.
func (uc *SubmitReview) Execute(
	ctx context.Context,
	reviewer *domain.Reviewer,
	cafeID string,
	rating int,
	comment string,
) (*models.ReviewWithAuthor, error) {

	if reviewer == nil || reviewer.ID == "" {
		return nil, ErrLoginRequired
	}

	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	comment, err := domain.NormalizeComment(comment)
	if err != nil {
		return nil, err
	}

	exists, err := uc.repo.CafeExists(ctx, cafeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, gateway.Wrap("submit review", gateway.ErrNotFound)
	}

	rv := models.Review{
		CafeID:  cafeID,
		UserID:  reviewer.ID,
		Rating:  rating,
		Comment: comment,
	}
	if err := uc.repo.CreateReview(ctx, &rv); err != nil {
		return nil, err
	}

	uc.metrics.Review("created")

	return &models.ReviewWithAuthor{
		Review: rv,
		User:   &models.ReviewAuthor{ID: reviewer.ID, FullName: reviewer.FullName},
	}, nil
}
