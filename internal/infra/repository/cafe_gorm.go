package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type CafeGormRepository struct {
	db *gorm.DB
}

func NewCafeGormRepository(db *gorm.DB) *CafeGormRepository {
	return &CafeGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *CafeGormRepository) ListCafes(ctx context.Context) ([]models.Cafe, error) {
	var cafes []models.Cafe
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&cafes).Error; err != nil {
		return nil, gateway.Wrap("list cafes", err)
	}
	return cafes, nil
}

func (r *CafeGormRepository) GetCafe(ctx context.Context, id string) (*models.Cafe, error) {
	var cafe models.Cafe
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cafe).Error; err != nil {
		return nil, gateway.Wrap("get cafe", err)
	}
	return &cafe, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *CafeGormRepository) CreateCafe(ctx context.Context, c *models.Cafe) error {
	return gateway.Wrap("create cafe", r.db.WithContext(ctx).Create(c).Error)
}

func (r *CafeGormRepository) UpdateCafe(
	ctx context.Context,
	id string,
	fields domain.CafeFields,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Cafe{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        fields.Name,
			"description": fields.Description,
			"image_url":   fields.ImageURL,
			"location":    fields.Location,
			"lat":         fields.Lat,
			"lng":         fields.Lng,
		})
	if res.Error != nil {
		return gateway.Wrap("update cafe", res.Error)
	}
	if res.RowsAffected == 0 {
		return gateway.Wrap("update cafe", gateway.ErrNotFound)
	}
	return nil
}

func (r *CafeGormRepository) UpdateGallery(
	ctx context.Context,
	id string,
	urls []string,
) error {

	if urls == nil {
		urls = []string{}
	}

	res := r.db.WithContext(ctx).
		Model(&models.Cafe{}).
		Where("id = ?", id).
		Update("gallery_urls", datatypes.JSONSlice[string](urls))
	if res.Error != nil {
		return gateway.Wrap("update gallery", res.Error)
	}
	if res.RowsAffected == 0 {
		return gateway.Wrap("update gallery", gateway.ErrNotFound)
	}
	return nil
}

// DeleteCafe removes the cafe and its reviews in one transaction.
func (r *CafeGormRepository) DeleteCafe(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("cafe_id = ?", id).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Cafe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gateway.ErrNotFound
		}
		return nil
	})
	return gateway.Wrap("delete cafe", err)
}

// --------------------------------------------------
// Review aggregates
// --------------------------------------------------

func (r *CafeGormRepository) ReviewStats(ctx context.Context) (map[string]domain.Stats, error) {
	var rows []struct {
		CafeID      string
		ReviewCount int
		RatingSum   int
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("cafe_id, COUNT(*) AS review_count, COALESCE(SUM(rating), 0) AS rating_sum").
		Where("rating BETWEEN ? AND ?", review.MinRating, review.MaxRating).
		Group("cafe_id").
		Scan(&rows).Error; err != nil {
		return nil, gateway.Wrap("review stats", err)
	}

	out := make(map[string]domain.Stats, len(rows))
	for _, row := range rows {
		out[row.CafeID] = domain.Stats{Count: row.ReviewCount, Sum: row.RatingSum}
	}
	return out, nil
}

func (r *CafeGormRepository) CafeReviewStats(ctx context.Context, cafeID string) (domain.Stats, error) {
	var row struct {
		ReviewCount int
		RatingSum   int
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS review_count, COALESCE(SUM(rating), 0) AS rating_sum").
		Where("cafe_id = ? AND rating BETWEEN ? AND ?", cafeID, review.MinRating, review.MaxRating).
		Scan(&row).Error; err != nil {
		return domain.Stats{}, gateway.Wrap("review stats", err)
	}
	return domain.Stats{Count: row.ReviewCount, Sum: row.RatingSum}, nil
}

// Compile-time check
var _ domain.Repository = (*CafeGormRepository)(nil)
