package gallery

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/imaging"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
	"github.com/BruksfildServices01/ratemycafe/internal/storage"
)

var ErrNoImagesUploaded = httperr.ErrBusinessMsg("no_images_uploaded", "No images were successfully uploaded")

// Service keeps a cafe's gallery_urls column in step with the objects under
// its folder in the cafe images bucket.
type Service struct {
	repo    domain.Repository
	bucket  storage.Bucket
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(
	repo domain.Repository,
	bucket storage.Bucket,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		bucket:  bucket,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

// ===============================
// Open
// ===============================

// Open lists the objects stored under the cafe's folder.
func (s *Service) Open(ctx context.Context, cafeID string) ([]models.StorageFile, error) {
	cafe, err := s.repo.GetCafe(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	objects, err := s.bucket.List(ctx, domain.FolderName(cafe.Name))
	if err != nil {
		return nil, err
	}

	files := make([]models.StorageFile, 0, len(objects))
	for _, o := range objects {
		files = append(files, models.StorageFile{
			Name: o.Name,
			ID:   o.Key,
			URL:  s.bucket.PublicURL(o.Key),
		})
	}
	return files, nil
}

// ===============================
// Upload
// ===============================

type UploadResult struct {
	Uploaded    []string `json:"uploaded"`
	Failed      []string `json:"failed"`
	GalleryURLs []string `json:"gallery_urls"`
}

// Upload stores files one by one. Files that fail are logged and skipped;
// the call only fails when none succeeded. If the new list cannot be saved,
// the objects uploaded by this call are removed again.
func (s *Service) Upload(
	ctx context.Context,
	actorID string,
	cafeID string,
	files []imaging.File,
) (*UploadResult, error) {

	cafe, err := s.repo.GetCafe(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	folder := domain.FolderName(cafe.Name)
	res := &UploadResult{Uploaded: []string{}, Failed: []string{}}
	var keys []string

	for _, f := range files {
		key, err := s.uploadOne(ctx, folder, f)
		if err != nil {
			slog.Warn("gallery upload failed", "cafe_id", cafeID, "file", f.Name, "error", err)
			s.metrics.Upload("gallery", false)
			res.Failed = append(res.Failed, f.Name)
			continue
		}
		s.metrics.Upload("gallery", true)
		keys = append(keys, key)
		res.Uploaded = append(res.Uploaded, s.bucket.PublicURL(key))
	}

	if len(keys) == 0 {
		return nil, ErrNoImagesUploaded
	}

	next := domain.AppendURLs(cafe.GalleryURLs, res.Uploaded)
	if err := s.repo.UpdateGallery(ctx, cafeID, next); err != nil {
		if rmErr := s.bucket.Remove(ctx, keys...); rmErr != nil {
			slog.Error("gallery compensation failed", "cafe_id", cafeID, "keys", keys, "error", rmErr)
		}
		return nil, err
	}
	res.GalleryURLs = next

	s.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "gallery_uploaded",
		Entity:   "cafe",
		EntityID: cafeID,
		Metadata: map[string]int{"uploaded": len(keys), "failed": len(res.Failed)},
	})

	return res, nil
}

func (s *Service) uploadOne(ctx context.Context, folder string, f imaging.File) (string, error) {
	p, err := imaging.Prepare(f, false)
	if err != nil {
		return "", err
	}

	key := folder + "/" + domain.ObjectName(s.now(), p.Name)
	if err := s.bucket.Upload(ctx, key, bytes.NewReader(p.Data), int64(len(p.Data)), p.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

// ===============================
// Delete
// ===============================

// Delete removes one object and exactly its public URL from the gallery.
func (s *Service) Delete(
	ctx context.Context,
	actorID string,
	cafeID string,
	fileName string,
) ([]string, error) {

	fileName = strings.TrimSpace(fileName)
	if fileName == "" || strings.Contains(fileName, "/") {
		return nil, httperr.ErrBusinessMsg("invalid_file_name", "Invalid file name.")
	}

	cafe, err := s.repo.GetCafe(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	key := domain.FolderName(cafe.Name) + "/" + fileName
	if err := s.bucket.Remove(ctx, key); err != nil {
		return nil, err
	}

	next := domain.RemoveURL(cafe.GalleryURLs, s.bucket.PublicURL(key))
	if err := s.repo.UpdateGallery(ctx, cafeID, next); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "gallery_image_deleted",
		Entity:   "cafe",
		EntityID: cafeID,
		Metadata: map[string]string{"file": fileName},
	})

	return next, nil
}

// ===============================
// Reconcile
// ===============================

// Reconcile repairs drift between the cafe's folder and its gallery_urls.
// Running it twice in a row changes nothing the second time.
func (s *Service) Reconcile(ctx context.Context, cafeID string) (bool, error) {
	cafe, err := s.repo.GetCafe(ctx, cafeID)
	if err != nil {
		return false, err
	}
	return s.reconcile(ctx, cafe)
}

func (s *Service) reconcile(ctx context.Context, cafe *models.Cafe) (bool, error) {
	folder := domain.FolderName(cafe.Name)
	objects, err := s.bucket.List(ctx, folder)
	if err != nil {
		return false, err
	}

	present := make([]string, 0, len(objects))
	for _, o := range objects {
		present = append(present, s.bucket.PublicURL(o.Key))
	}

	next, changed := domain.Reconcile(cafe.GalleryURLs, present, s.bucket.PublicURL(folder+"/"))
	if !changed {
		return false, nil
	}

	if err := s.repo.UpdateGallery(ctx, cafe.ID, next); err != nil {
		return false, err
	}

	s.metrics.GalleryReconciled()
	slog.Info("gallery reconciled", "cafe_id", cafe.ID, "before", len(cafe.GalleryURLs), "after", len(next))
	return true, nil
}

// ReconcileAll reconciles every cafe and returns how many were repaired. It
// keeps going past individual failures and returns them joined.
func (s *Service) ReconcileAll(ctx context.Context) (int, error) {
	cafes, err := s.repo.ListCafes(ctx)
	if err != nil {
		return 0, err
	}

	var (
		repaired int
		errs     []error
	)
	for i := range cafes {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		changed, err := s.reconcile(ctx, &cafes[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if changed {
			repaired++
		}
	}
	return repaired, errors.Join(errs...)
}

// RunReconciler calls ReconcileAll every interval until ctx is done.
func (s *Service) RunReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.ReconcileAll(ctx)
			if err != nil {
				slog.Error("gallery reconcile", "repaired", n, "error", err)
				continue
			}
			if n > 0 {
				slog.Info("gallery reconcile", "repaired", n)
			}
		}
	}
}
