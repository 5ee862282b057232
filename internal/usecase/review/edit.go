package review

import (
	"context"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type EditReview struct {
	repo    domain.Repository
	metrics *metrics.Metrics
}

func NewEditReview(repo domain.Repository, m *metrics.Metrics) *EditReview {
	return &EditReview{repo: repo, metrics: m}
}

// Execute changes the comment only. The repository refuses reviews the
// user did not write.
func (uc *EditReview) Execute(
	ctx context.Context,
	userID string,
	reviewID string,
	comment string,
) (*models.Review, error) {

	if userID == "" {
		return nil, ErrLoginRequired
	}

	comment, err := domain.NormalizeEditedComment(comment)
	if err != nil {
		return nil, err
	}

	rv, err := uc.repo.UpdateOwnComment(ctx, reviewID, userID, comment)
	if err != nil {
		return nil, err
	}

	uc.metrics.Review("edited")
	return rv, nil
}

type DeleteReview struct {
	repo    domain.Repository
	metrics *metrics.Metrics
}

func NewDeleteReview(repo domain.Repository, m *metrics.Metrics) *DeleteReview {
	return &DeleteReview{repo: repo, metrics: m}
}

func (uc *DeleteReview) Execute(ctx context.Context, userID, reviewID string) error {
	if userID == "" {
		return ErrLoginRequired
	}

	if err := uc.repo.DeleteOwnReview(ctx, reviewID, userID); err != nil {
		return err
	}

	uc.metrics.Review("deleted")
	return nil
}
