package loadstate

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/titles"
)

// DefaultListLimit is the number of titles loaded per category. Every title
// costs one details request, so the list is kept short.
const DefaultListLimit = 15

// CatalogLoader loads both categories at once
type CatalogLoader interface {
	LoadBoth(ctx context.Context, limit int) (titles.Catalog, error)
}

// ListController drives the title listing view
type ListController struct {
	*Controller[titles.Catalog]

	limit    int
	mu       sync.Mutex
	selected catalog.Category
}

// NewListController creates a ListController that loads limit titles per
// category. A limit below one falls back to DefaultListLimit.
func NewListController(loader CatalogLoader, limit int, logger zerolog.Logger, opts ...Option) *ListController {
	if limit < 1 {
		limit = DefaultListLimit
	}

	fetch := func(ctx context.Context) (titles.Catalog, error) {
		return loader.LoadBoth(ctx, limit)
	}

	return &ListController{
		Controller: NewController[titles.Catalog](fetch, logger.With().Str("view", "list").Logger(), opts...),
		limit:      limit,
		selected:   catalog.CategoryMovie,
	}
}

// Limit returns the per-category limit
func (l *ListController) Limit() int {
	return l.limit
}

// Selected returns the category currently shown
func (l *ListController) Selected() catalog.Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// Select switches the category shown. It does not reload.
func (l *ListController) Select(category catalog.Category) error {
	if !category.Valid() {
		return catalog.ErrInvalidCategory
	}
	l.mu.Lock()
	l.selected = category
	l.mu.Unlock()
	return nil
}

// Toggle switches between movies and series and returns the new selection
func (l *ListController) Toggle() catalog.Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == catalog.CategoryMovie {
		l.selected = catalog.CategorySeries
	} else {
		l.selected = catalog.CategoryMovie
	}
	return l.selected
}

// Current returns the titles of the selected category, or nil unless Loaded
func (l *ListController) Current() []catalog.TitleSummary {
	state := l.State()
	if !state.IsLoaded() {
		return nil
	}
	return state.Data.For(l.Selected())
}

// IsEmpty checks if the controller is Loaded with no titles in the selected
// category. An empty listing is not an error.
func (l *ListController) IsEmpty() bool {
	return l.State().IsLoaded() && len(l.Current()) == 0
}
