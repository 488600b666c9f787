package titles

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/titlewatch/catalog"
)

// Catalog holds the movie and series listings loaded together
type Catalog struct {
	Movies []catalog.TitleSummary
	Shows  []catalog.TitleSummary
}

// For returns the listing of one category
func (c Catalog) For(category catalog.Category) []catalog.TitleSummary {
	if category == catalog.CategorySeries {
		return c.Shows
	}
	return c.Movies
}

// Empty checks if neither listing has any titles
func (c Catalog) Empty() bool {
	return len(c.Movies) == 0 && len(c.Shows) == 0
}

// DualLoader loads movies and series concurrently
type DualLoader struct {
	loader Loader
	logger zerolog.Logger
}

// NewDualLoader creates a new DualLoader
func NewDualLoader(loader Loader, logger zerolog.Logger) *DualLoader {
	return &DualLoader{
		loader: loader,
		logger: logger,
	}
}

// LoadBoth loads both categories concurrently and waits for both. If either
// branch fails the other is cancelled and only the first error is returned;
// a partial Catalog is never returned.
func (d *DualLoader) LoadBoth(ctx context.Context, limit int) (Catalog, error) {
	var movies, shows []catalog.TitleSummary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		movies, err = d.loader.Load(gctx, catalog.CategoryMovie, limit)
		return err
	})
	g.Go(func() error {
		var err error
		shows, err = d.loader.Load(gctx, catalog.CategorySeries, limit)
		return err
	})

	if err := g.Wait(); err != nil {
		d.logger.Debug().Err(err).Msg("Catalog load failed, discarding both listings")
		return Catalog{}, err
	}

	d.logger.Debug().
		Int("movies", len(movies)).
		Int("shows", len(shows)).
		Msg("Loaded catalog")

	return Catalog{Movies: movies, Shows: shows}, nil
}

// LoadCategory loads a single category and returns it as a Catalog
func (d *DualLoader) LoadCategory(ctx context.Context, category catalog.Category, limit int) (Catalog, error) {
	if !category.Valid() {
		return Catalog{}, &catalog.Error{
			Kind:    catalog.KindInvalidRequest,
			Op:      "load",
			Message: "invalid request",
			Err:     fmt.Errorf("%w: %q", catalog.ErrInvalidCategory, category),
		}
	}
	list, err := d.loader.Load(ctx, category, limit)
	if err != nil {
		return Catalog{}, err
	}
	if category == catalog.CategorySeries {
		return Catalog{Shows: list}, nil
	}
	return Catalog{Movies: list}, nil
}
