package review

import (
	"context"

	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type Repository interface {
	// -------- Read --------
	CafeExists(ctx context.Context, cafeID string) (bool, error)

	// ReviewsWithAuthors returns the reviews of a cafe, newest first, each
	// joined with its author row when one exists.
	ReviewsWithAuthors(ctx context.Context, cafeID string) ([]models.ReviewWithAuthor, error)

	// -------- Write --------
	CreateReview(ctx context.Context, r *models.Review) error

	// UpdateOwnComment and DeleteOwnReview only touch rows written by userID.
	// gateway.ErrForbidden when the review belongs to someone else.
	UpdateOwnComment(ctx context.Context, reviewID, userID, comment string) (*models.Review, error)
	DeleteOwnReview(ctx context.Context, reviewID, userID string) error
}
