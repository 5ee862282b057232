package cafe

import (
	"bytes"
	"context"
	"time"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/imaging"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
	"github.com/BruksfildServices01/ratemycafe/internal/storage"
)

// LogoUploader stores cafe logos under the logos folder of the cafe images bucket.
type LogoUploader struct {
	bucket  storage.Bucket
	webp    bool
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewLogoUploader(
	bucket storage.Bucket,
	webp bool,
	m *metrics.Metrics,
) *LogoUploader {
	return &LogoUploader{
		bucket:  bucket,
		webp:    webp,
		metrics: m,
		now:     time.Now,
	}
}

// Upload returns the public URL of the stored logo.
func (u *LogoUploader) Upload(ctx context.Context, f imaging.File) (string, error) {
	p, err := imaging.Prepare(f, u.webp)
	if err != nil {
		return "", err
	}

	objectPath := domain.LogoPath(u.now(), p.Name)
	if err := u.bucket.Upload(ctx, objectPath, bytes.NewReader(p.Data), int64(len(p.Data)), p.ContentType); err != nil {
		u.metrics.Upload("logo", false)
		return "", err
	}

	u.metrics.Upload("logo", true)
	return u.bucket.PublicURL(objectPath), nil
}
