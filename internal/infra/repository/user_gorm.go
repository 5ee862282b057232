package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/user"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// UpsertUser creates the user on first sign-in. Later sign-ins refresh the
// email and only fill name and image while they are still blank, so profile
// edits survive.
func (r *UserGormRepository) UpsertUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("id = ?", u.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(u).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]any{"email": u.Email}
		if existing.FullName == "" && u.FullName != "" {
			updates["full_name"] = u.FullName
		}
		if existing.Image == "" && u.Image != "" {
			updates["image"] = u.Image
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", u.ID).First(u).Error
	})
	return gateway.Wrap("upsert user", err)
}

func (r *UserGormRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error; err != nil {
		return nil, gateway.Wrap("get user", err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, gateway.Wrap("get user by email", err)
	}
	return &u, nil
}

func (r *UserGormRepository) UpdateProfile(
	ctx context.Context,
	id string,
	fields domain.ProfileFields,
) (*models.User, error) {

	updates := map[string]any{}
	if fields.FullName != nil {
		updates["full_name"] = *fields.FullName
	}
	if fields.Image != nil {
		updates["image"] = *fields.Image
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, gateway.Wrap("update profile", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gateway.Wrap("update profile", gateway.ErrNotFound)
		}
	}

	return r.GetUser(ctx, id)
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
