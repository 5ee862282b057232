package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/dbtest"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/imaging"
	"github.com/BruksfildServices01/ratemycafe/internal/imaging/imagingtest"
	infraRepo "github.com/BruksfildServices01/ratemycafe/internal/infra/repository"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
	"github.com/BruksfildServices01/ratemycafe/internal/storage"
)

func newService(t *testing.T) (*Service, *storage.MemoryBucket) {
	t.Helper()
	db := dbtest.Open(t)
	users := infraRepo.NewUserGormRepository(db)
	require.NoError(t, users.UpsertUser(context.Background(), &models.User{
		ID:       "google:1",
		Email:    "dara@example.com",
		FullName: "Dara",
		Image:    "https://lh3.example/dara.png",
	}))

	bucket := storage.NewMemoryBucket(storage.BucketAvatars, "http://cdn.test")
	svc := NewService(users, bucket, nil, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, bucket
}

func TestGet_KeepsProviderAvatar(t *testing.T) {
	svc, _ := newService(t)

	u, err := svc.Get(context.Background(), "google:1")
	require.NoError(t, err)
	assert.Equal(t, "https://lh3.example/dara.png", u.Image)
}

func TestRename(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Rename(ctx, "google:1", "  Dara   Sok ")
	require.NoError(t, err)
	assert.Equal(t, "Dara Sok", u.FullName)

	_, err = svc.Rename(ctx, "google:1", "   ")
	assert.True(t, httperr.IsBusiness(err, "full_name_required"))
}

func TestUploadAvatar(t *testing.T) {
	svc, bucket := newService(t)

	u, err := svc.UploadAvatar(context.Background(), "google:1", imaging.File{
		Name: "me.png",
		Data: imagingtest.PNG(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/avatars/google:1/1700000000000-me.png", u.Image)
	assert.Equal(t, 1, bucket.Len())

	// the row keeps the object path, not the URL
	raw, err := svc.users.GetUser(context.Background(), "google:1")
	require.NoError(t, err)
	assert.Equal(t, "google:1/1700000000000-me.png", raw.Image)
}

func TestUploadAvatar_UnknownUserRemovesObject(t *testing.T) {
	svc, bucket := newService(t)

	_, err := svc.UploadAvatar(context.Background(), "google:404", imaging.File{
		Name: "me.png",
		Data: imagingtest.PNG(t),
	})
	require.Error(t, err)
	assert.Equal(t, 0, bucket.Len())
}

func TestUploadAvatar_RejectsNonImage(t *testing.T) {
	svc, bucket := newService(t)

	_, err := svc.UploadAvatar(context.Background(), "google:1", imaging.File{
		Name: "notes.txt",
		Data: []byte("hello"),
	})
	require.Error(t, err)
	assert.Equal(t, 0, bucket.Len())
}
