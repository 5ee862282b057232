package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/dbtest"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

func TestReviewRepository_ReviewsWithAuthors(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	repo := NewReviewGormRepository(gdb)
	users := NewUserGormRepository(gdb)

	require.NoError(t, users.UpsertUser(ctx, &models.User{ID: "u1", Email: "dara@example.com", FullName: "Dara"}))

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateReview(ctx, &models.Review{
		ID: "r-old", CafeID: "c1", UserID: "u1", Rating: 4, Comment: "ok", CreatedAt: base,
	}))
	require.NoError(t, repo.CreateReview(ctx, &models.Review{
		ID: "r-new", CafeID: "c1", UserID: "ghost", Rating: 5, CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, repo.CreateReview(ctx, &models.Review{
		ID: "r-other", CafeID: "c2", UserID: "u1", Rating: 1, CreatedAt: base,
	}))

	list, err := repo.ReviewsWithAuthors(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "r-new", list[0].ID)
	assert.Nil(t, list[0].User)

	assert.Equal(t, "r-old", list[1].ID)
	assert.Equal(t, "ok", list[1].Comment)
	require.NotNil(t, list[1].User)
	assert.Equal(t, "Dara", list[1].User.FullName)
	assert.True(t, list[1].CreatedAt.Equal(base))

	empty, err := repo.ReviewsWithAuthors(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReviewRepository_OwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewGormRepository(dbtest.Open(t))

	rv := &models.Review{CafeID: "c1", UserID: "author", Rating: 3, Comment: "meh"}
	require.NoError(t, repo.CreateReview(ctx, rv))

	_, err := repo.UpdateOwnComment(ctx, rv.ID, "intruder", "hacked")
	assert.True(t, gateway.IsPermission(err))

	assert.True(t, gateway.IsPermission(repo.DeleteOwnReview(ctx, rv.ID, "intruder")))

	_, err = repo.UpdateOwnComment(ctx, "missing", "author", "x")
	assert.True(t, gateway.IsNotFound(err))
	assert.True(t, gateway.IsNotFound(repo.DeleteOwnReview(ctx, "missing", "author")))

	updated, err := repo.UpdateOwnComment(ctx, rv.ID, "author", "better")
	require.NoError(t, err)
	assert.Equal(t, "better", updated.Comment)
	assert.Equal(t, 3, updated.Rating)

	require.NoError(t, repo.DeleteOwnReview(ctx, rv.ID, "author"))
	list, err := repo.ReviewsWithAuthors(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReviewRepository_CafeExists(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	repo := NewReviewGormRepository(gdb)

	c := &models.Cafe{Name: "X", ImageURL: "x"}
	require.NoError(t, NewCafeGormRepository(gdb).CreateCafe(ctx, c))

	ok, err := repo.CafeExists(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CafeExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
