package catalog

import (
	"context"
)

// API defines the catalog operations the rest of titlewatch depends on
type API interface {
	// ListTitles returns up to limit titles of the given category in API order
	ListTitles(ctx context.Context, category Category, limit int) ([]TitleSummary, error)

	// GetTitleDetails returns the full record for a single title
	GetTitleDetails(ctx context.Context, id int64) (TitleDetails, error)
}

var _ API = (*Client)(nil)
