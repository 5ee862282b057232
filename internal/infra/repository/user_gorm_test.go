package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/user"
	"github.com/BruksfildServices01/ratemycafe/internal/dbtest"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

func TestUserRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewUserGormRepository(dbtest.Open(t))

	u := &models.User{ID: "g-1", Email: " Dara@Example.com ", FullName: "Dara", Image: "https://g/pic.png"}
	require.NoError(t, repo.UpsertUser(ctx, u))
	assert.Equal(t, "dara@example.com", u.Email)

	name := "Sok Dara"
	_, err := repo.UpdateProfile(ctx, "g-1", domain.ProfileFields{FullName: &name})
	require.NoError(t, err)

	again := &models.User{ID: "g-1", Email: "dara@example.com", FullName: "Provider Name", Image: "https://g/new.png"}
	require.NoError(t, repo.UpsertUser(ctx, again))
	assert.Equal(t, "Sok Dara", again.FullName)
	assert.Equal(t, "https://g/pic.png", again.Image)

	byEmail, err := repo.GetUserByEmail(ctx, "DARA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "g-1", byEmail.ID)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, gateway.IsNotFound(err))
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewUserGormRepository(dbtest.Open(t))

	require.NoError(t, repo.UpsertUser(ctx, &models.User{ID: "u1", Email: "a@b.c"}))

	img := "u1/1700000000000-me.png"
	got, err := repo.UpdateProfile(ctx, "u1", domain.ProfileFields{Image: &img})
	require.NoError(t, err)
	assert.Equal(t, img, got.Image)
	assert.Empty(t, got.FullName)

	got, err = repo.UpdateProfile(ctx, "u1", domain.ProfileFields{})
	require.NoError(t, err)
	assert.Equal(t, img, got.Image)

	_, err = repo.UpdateProfile(ctx, "missing", domain.ProfileFields{Image: &img})
	assert.True(t, gateway.IsNotFound(err))
}
