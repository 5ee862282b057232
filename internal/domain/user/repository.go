package user

import (
	"context"

	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type Repository interface {
	// UpsertUser inserts u or refreshes email, name and image of the row with the same id.
	UpsertUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, fields ProfileFields) (*models.User, error)
}

// ProfileFields holds the columns a user may change; nil leaves the column as is.
type ProfileFields struct {
	FullName *string
	Image    *string
}
