package cafe

import (
	"context"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type UpdateCafe struct {
	repo  domain.Repository
	logos *LogoUploader
	audit *audit.Dispatcher
}

func NewUpdateCafe(
	repo domain.Repository,
	logos *LogoUploader,
	audit *audit.Dispatcher,
) *UpdateCafe {
	return &UpdateCafe{
		repo:  repo,
		logos: logos,
		audit: audit,
	}
}

// Execute applies a partial update: blank fields and missing coordinates keep
// their current values.
func (uc *UpdateCafe) Execute(
	ctx context.Context,
	actorID string,
	id string,
	in Input,
) (*models.Cafe, error) {

	current, err := uc.repo.GetCafe(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateCoordinates(in.Lat, in.Lng); err != nil {
		return nil, err
	}

	imageURL := fallback(in.ImageURL, current.ImageURL)
	if in.hasLogo() {
		url, err := uc.logos.Upload(ctx, *in.Logo)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	fields := domain.CafeFields{
		Name:        fallback(in.Name, current.Name),
		Description: fallback(in.Description, current.Description),
		ImageURL:    imageURL,
		Location:    fallback(in.Location, current.Location),
		Lat:         current.Lat,
		Lng:         current.Lng,
	}
	if in.Lat != nil {
		fields.Lat = in.Lat
	}
	if in.Lng != nil {
		fields.Lng = in.Lng
	}

	if err := uc.repo.UpdateCafe(ctx, id, fields); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "cafe_updated",
		Entity:   "cafe",
		EntityID: id,
	})

	return uc.repo.GetCafe(ctx, id)
}
