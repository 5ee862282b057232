package cafe

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

type CreateCafe struct {
	repo  domain.Repository
	logos *LogoUploader
	audit *audit.Dispatcher
}

func NewCreateCafe(
	repo domain.Repository,
	logos *LogoUploader,
	audit *audit.Dispatcher,
) *CreateCafe {
	return &CreateCafe{
		repo:  repo,
		logos: logos,
		audit: audit,
	}
}

// Execute validates everything before touching storage or the database, and
// uploads the logo file before inserting so a failed upload inserts nothing.
func (uc *CreateCafe) Execute(
	ctx context.Context,
	actorID string,
	in Input,
) (*models.Cafe, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusinessMsg("name_required", "Cafe name is required.")
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if !in.hasLogo() && imageURL == "" {
		return nil, httperr.ErrBusinessMsg("logo_required", "Please upload a logo or provide a logo URL.")
	}

	if err := validateCoordinates(in.Lat, in.Lng); err != nil {
		return nil, err
	}

	if in.hasLogo() {
		url, err := uc.logos.Upload(ctx, *in.Logo)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	cafe := &models.Cafe{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    imageURL,
		Location:    strings.TrimSpace(in.Location),
		Lat:         in.Lat,
		Lng:         in.Lng,
	}

	if err := uc.repo.CreateCafe(ctx, cafe); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "cafe_created",
		Entity:   "cafe",
		EntityID: cafe.ID,
		Metadata: map[string]string{"name": cafe.Name},
	})

	return cafe, nil
}
