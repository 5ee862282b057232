package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *ReviewGormRepository) CafeExists(ctx context.Context, cafeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Cafe{}).
		Where("id = ?", cafeID).
		Count(&count).Error; err != nil {
		return false, gateway.Wrap("find cafe", err)
	}
	return count > 0, nil
}

type reviewAuthorRow struct {
	ID         string
	CafeID     string
	UserID     string
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	AuthorID   *string
	AuthorName *string
}

func (r *ReviewGormRepository) ReviewsWithAuthors(
	ctx context.Context,
	cafeID string,
) ([]models.ReviewWithAuthor, error) {

	var rows []reviewAuthorRow
	if err := r.db.WithContext(ctx).
		Table("reviews").
		Select(`reviews.id, reviews.cafe_id, reviews.user_id, reviews.rating, reviews.comment,
			reviews.created_at, reviews.updated_at,
			users.id AS author_id, users.full_name AS author_name`).
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Where("reviews.cafe_id = ?", cafeID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, gateway.Wrap("list reviews", err)
	}

	out := make([]models.ReviewWithAuthor, 0, len(rows))
	for _, row := range rows {
		item := models.ReviewWithAuthor{
			Review: models.Review{
				ID:        row.ID,
				CafeID:    row.CafeID,
				UserID:    row.UserID,
				Rating:    row.Rating,
				Comment:   row.Comment,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
		}
		if row.AuthorID != nil {
			author := &models.ReviewAuthor{ID: *row.AuthorID}
			if row.AuthorName != nil {
				author.FullName = *row.AuthorName
			}
			item.User = author
		}
		out = append(out, item)
	}
	return out, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *ReviewGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	return gateway.Wrap("create review", r.db.WithContext(ctx).Create(rv).Error)
}

func (r *ReviewGormRepository) UpdateOwnComment(
	ctx context.Context,
	reviewID string,
	userID string,
	comment string,
) (*models.Review, error) {

	var out models.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Review{}).
			Where("id = ? AND user_id = ?", reviewID, userID).
			Update("comment", comment)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return missingOrForeign(tx, reviewID)
		}
		return tx.Where("id = ?", reviewID).First(&out).Error
	})
	if err != nil {
		return nil, gateway.Wrap("update review", err)
	}
	return &out, nil
}

func (r *ReviewGormRepository) DeleteOwnReview(
	ctx context.Context,
	reviewID string,
	userID string,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", reviewID, userID).
			Delete(&models.Review{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return missingOrForeign(tx, reviewID)
		}
		return nil
	})
	return gateway.Wrap("delete review", err)
}

// missingOrForeign tells apart a review that does not exist from one owned by
// someone else, after an owner-scoped statement matched nothing.
func missingOrForeign(tx *gorm.DB, reviewID string) error {
	var count int64
	if err := tx.Model(&models.Review{}).
		Where("id = ?", reviewID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gateway.ErrNotFound
	}
	return gateway.ErrForbidden
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
