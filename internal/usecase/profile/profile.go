package profile

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	cafedomain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/user"
	"github.com/BruksfildServices01/ratemycafe/internal/imaging"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
	"github.com/BruksfildServices01/ratemycafe/internal/storage"
)

// Service reads and edits the signed-in user's own row. Avatars live in
// the avatars bucket under <user-id>/, and users.image keeps the object
// path; every user returned here has Image resolved to a public URL.
type Service struct {
	users   domain.Repository
	avatars storage.Bucket
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(
	users domain.Repository,
	avatars storage.Bucket,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		users:   users,
		avatars: avatars,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

func (s *Service) Get(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(u), nil
}

func (s *Service) Rename(ctx context.Context, userID, fullName string) (*models.User, error) {
	name, err := domain.NormalizeFullName(fullName)
	if err != nil {
		return nil, err
	}

	u, err := s.users.UpdateProfile(ctx, userID, domain.ProfileFields{FullName: &name})
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: userID,
	})
	return s.resolve(u), nil
}

// UploadAvatar stores f and points the user's image at it. When the row
// cannot be updated the new object is removed again.
func (s *Service) UploadAvatar(ctx context.Context, userID string, f imaging.File) (*models.User, error) {
	p, err := imaging.Prepare(f, false)
	if err != nil {
		return nil, err
	}

	key := userID + "/" + cafedomain.ObjectName(s.now(), p.Name)
	if err := s.avatars.Upload(ctx, key, bytes.NewReader(p.Data), int64(len(p.Data)), p.ContentType); err != nil {
		s.metrics.Upload("avatar", false)
		return nil, err
	}
	s.metrics.Upload("avatar", true)

	u, err := s.users.UpdateProfile(ctx, userID, domain.ProfileFields{Image: &key})
	if err != nil {
		if rmErr := s.avatars.Remove(ctx, key); rmErr != nil {
			slog.Error("avatar compensation failed", "user_id", userID, "key", key, "error", rmErr)
		}
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "avatar_uploaded",
		Entity:   "user",
		EntityID: userID,
		Metadata: map[string]string{"key": key},
	})
	return s.resolve(u), nil
}

// ImageURL turns a stored image value into something a browser can load.
// Provider avatars are already absolute URLs.
func (s *Service) ImageURL(image string) string {
	if image == "" || storage.IsPublicURL(image) {
		return image
	}
	return s.avatars.PublicURL(image)
}

func (s *Service) resolve(u *models.User) *models.User {
	out := *u
	out.Image = s.ImageURL(u.Image)
	return &out
}
