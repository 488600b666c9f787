package loadstate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/s0up4200/titlewatch/catalog"
)

// DetailsFetcher fetches a single title's details
type DetailsFetcher interface {
	GetTitleDetails(ctx context.Context, id int64) (catalog.TitleDetails, error)
}

// DetailController drives the details view of one title
type DetailController struct {
	*Controller[catalog.TitleDetails]

	id int64
}

// NewDetailController creates a DetailController for the given title
func NewDetailController(fetcher DetailsFetcher, id int64, logger zerolog.Logger, opts ...Option) *DetailController {
	fetch := func(ctx context.Context) (catalog.TitleDetails, error) {
		return fetcher.GetTitleDetails(ctx, id)
	}

	return &DetailController{
		Controller: NewController[catalog.TitleDetails](fetch, logger.With().Str("view", "details").Int64("title_id", id).Logger(), opts...),
		id:         id,
	}
}

// ID returns the title the controller loads
func (d *DetailController) ID() int64 {
	return d.id
}
