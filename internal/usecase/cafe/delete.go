package cafe

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/storage"
)

type DeleteCafe struct {
	repo   domain.Repository
	images storage.Bucket
	audit  *audit.Dispatcher
}

func NewDeleteCafe(
	repo domain.Repository,
	images storage.Bucket,
	audit *audit.Dispatcher,
) *DeleteCafe {
	return &DeleteCafe{
		repo:   repo,
		images: images,
		audit:  audit,
	}
}

// Execute deletes the cafe with its reviews, then clears its gallery folder.
// Storage cleanup failures are logged; the row is already gone by then.
func (uc *DeleteCafe) Execute(
	ctx context.Context,
	actorID string,
	id string,
) error {

	cafe, err := uc.repo.GetCafe(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteCafe(ctx, id); err != nil {
		return err
	}

	folder := domain.FolderName(cafe.Name)
	objects, err := uc.images.List(ctx, folder)
	if err != nil {
		slog.Warn("list gallery for deleted cafe", "cafe_id", id, "folder", folder, "error", err)
	} else if len(objects) > 0 {
		keys := make([]string, 0, len(objects))
		for _, o := range objects {
			keys = append(keys, o.Key)
		}
		if err := uc.images.Remove(ctx, keys...); err != nil {
			slog.Warn("remove gallery for deleted cafe", "cafe_id", id, "folder", folder, "error", err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "cafe_deleted",
		Entity:   "cafe",
		EntityID: id,
		Metadata: map[string]string{"name": cafe.Name},
	})

	return nil
}
