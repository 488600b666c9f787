// Package titles assembles catalog listings for display: it enriches listed
// titles with their details concurrently and joins the movie and series
// listings into one Catalog.
package titles

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/ratelimit"
)

// MaxConcurrency caps the detail fan-out regardless of list size
const MaxConcurrency = 20

// Loader loads the display-ready titles of one category
type Loader interface {
	Load(ctx context.Context, category catalog.Category, limit int) ([]catalog.TitleSummary, error)
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithRateLimiter throttles detail requests. A nil limiter disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) AggregatorOption {
	return func(a *Aggregator) {
		a.limiter = limiter
	}
}

// WithConcurrency caps the number of detail requests in flight.
// Zero bounds the fan-out by the list size alone.
func WithConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n >= 0 {
			a.concurrency = n
		}
	}
}

// Aggregator lists titles and fills in their posters from the details endpoint
type Aggregator struct {
	api         catalog.API
	limiter     *ratelimit.Limiter
	concurrency int
	logger      zerolog.Logger
}

var _ Loader = (*Aggregator)(nil)

// NewAggregator creates a new Aggregator
func NewAggregator(api catalog.API, logger zerolog.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		api:    api,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load lists up to limit titles of a category and fetches details for each of
// them concurrently. A listing failure fails the call; a failed detail fetch
// only drops that title. The result keeps the listing order and may be empty.
func (a *Aggregator) Load(ctx context.Context, category catalog.Category, limit int) ([]catalog.TitleSummary, error) {
	if limit < 1 {
		return nil, &catalog.Error{
			Kind:    catalog.KindInvalidRequest,
			Op:      "load " + string(category),
			Message: "invalid request",
			Err:     fmt.Errorf("%w: %d", catalog.ErrInvalidLimit, limit),
		}
	}

	listed, err := a.api.ListTitles(ctx, category, limit)
	if err != nil {
		return nil, err
	}

	// The endpoint is not trusted to honour the limit
	if len(listed) > limit {
		listed = listed[:limit]
	}
	if len(listed) == 0 {
		return []catalog.TitleSummary{}, nil
	}

	// Each goroutine owns one slot, so no lock is needed
	slots := make([]*catalog.TitleSummary, len(listed))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.fanOut(len(listed)))

	for i, entry := range listed {
		g.Go(func() error {
			if err := a.limiter.Wait(gctx); err != nil {
				a.logger.Warn().
					Err(err).
					Str("limiter", a.limiter.Name()).
					Int64("title_id", entry.ID).
					Msg("Skipping title details")
				return nil
			}

			details, err := a.api.GetTitleDetails(gctx, entry.ID)
			if err != nil {
				a.logger.Warn().
					Err(err).
					Int64("title_id", entry.ID).
					Str("title", entry.Name).
					Msg("Failed to get title details")
				// Continue processing other titles
				return nil
			}

			summary := details.Summary()
			if summary.RelevancePercentile == 0 {
				summary.RelevancePercentile = entry.RelevancePercentile
			}
			if summary.Category == "" {
				summary.Category = entry.Category
			}
			slots[i] = &summary
			return nil
		})
	}

	// Goroutines never return errors, Wait only joins them
	_ = g.Wait()

	// A cancelled load must not look like an empty catalog
	if err := ctx.Err(); err != nil {
		return nil, &catalog.Error{
			Kind:    catalog.KindTransport,
			Op:      "load " + string(category),
			Message: "load cancelled",
			Err:     err,
		}
	}

	results := make([]catalog.TitleSummary, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			results = append(results, *s)
		}
	}

	if dropped := len(listed) - len(results); dropped > 0 {
		a.logger.Info().
			Str("category", string(category)).
			Int("listed", len(listed)).
			Int("dropped", dropped).
			Msg("Some titles were skipped")
	}

	a.logger.Debug().
		Str("category", string(category)).
		Int("count", len(results)).
		Msgf("Loaded %s", category.DisplayName())

	return results, nil
}

func (a *Aggregator) fanOut(n int) int {
	limit := n
	if a.concurrency > 0 && a.concurrency < limit {
		limit = a.concurrency
	}
	return min(limit, MaxConcurrency)
}
