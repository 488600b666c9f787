package view

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/loadstate"
	"github.com/s0up4200/titlewatch/titles"
)

func TestFormatTitleList(t *testing.T) {
	f := NewConsoleFormatter()
	list := []catalog.TitleSummary{
		{ID: 1, Name: "Dune", Year: 2021, UserRating: 8.1, PosterURL: "https://cdn.example.com/1.jpg"},
		{ID: 2, Name: "Arrival", Year: 2016},
	}

	out := f.FormatTitleList(catalog.CategoryMovie, list, FormatOptions{ShowDetails: true})

	assert.Contains(t, out, "Movies (2):")
	assert.Contains(t, out, "├── Dune (2021) [1]\n")
	assert.Contains(t, out, "│   Rating: 8.1\n")
	assert.Contains(t, out, "│   Poster: https://cdn.example.com/1.jpg\n")
	assert.Contains(t, out, "╰── Arrival (2016) [2]\n")
	assert.Contains(t, out, "    Rating: N/A\n")
	assert.Less(t, strings.Index(out, "Dune"), strings.Index(out, "Arrival"))
}

func TestFormatTitleListWithoutDetails(t *testing.T) {
	f := NewConsoleFormatter()
	list := []catalog.TitleSummary{{ID: 9, Name: "Severance", UserRating: 8.7}}

	out := f.FormatTitleList(catalog.CategorySeries, list, FormatOptions{})
	assert.Contains(t, out, "TV Shows (1):")
	assert.Contains(t, out, "╰── Severance [9]\n")
	assert.NotContains(t, out, "Rating")
}

func TestFormatTitleListEmpty(t *testing.T) {
	out := NewConsoleFormatter().FormatTitleList(catalog.CategoryMovie, nil, FormatOptions{})
	assert.Contains(t, out, "Movies: "+EmptyMessage)
}

func TestFormatListState(t *testing.T) {
	f := NewConsoleFormatter()
	both := []catalog.Category{catalog.CategoryMovie, catalog.CategorySeries}

	tests := []struct {
		name     string
		state    loadstate.State[titles.Catalog]
		options  FormatOptions
		contains []string
		excludes []string
	}{
		{
			name:     "idle",
			state:    loadstate.Idle[titles.Catalog](),
			excludes: []string{LoadingMessage, "Error"},
		},
		{
			name:     "loading",
			state:    loadstate.Loading[titles.Catalog](1),
			contains: []string{LoadingMessage},
		},
		{
			name: "failed with retry hint",
			state: loadstate.Failed[titles.Catalog](1, loadstate.NewErrorInfo(
				&catalog.Error{Kind: catalog.KindServerStatus, StatusCode: 500})),
			options:  FormatOptions{RetryHint: true},
			contains: []string{"Error: Server error with code: 500", "can be retried"},
		},
		{
			name: "invalid request is not retryable",
			state: loadstate.Failed[titles.Catalog](1, loadstate.NewErrorInfo(
				&catalog.Error{Kind: catalog.KindInvalidRequest, Op: "list titles", Message: "invalid request"})),
			options:  FormatOptions{RetryHint: true},
			contains: []string{"Error: Invalid request"},
			excludes: []string{"can be retried"},
		},
		{
			name: "loaded",
			state: loadstate.Loaded(1, titles.Catalog{
				Movies: []catalog.TitleSummary{{ID: 1, Name: "Dune"}},
				Shows:  []catalog.TitleSummary{},
			}),
			contains: []string{"Movies (1):", "Dune", "TV Shows: " + EmptyMessage},
			excludes: []string{"Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := f.FormatListState(tt.state, both, tt.options)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestFormatDetails(t *testing.T) {
	d := catalog.TitleDetails{
		ID:             1,
		Name:           "Dune",
		OriginalName:   "Dune: Part One",
		Category:       catalog.CategoryMovie,
		Year:           2021,
		RuntimeMinutes: 155,
		GenreNames:     []string{"Sci-Fi", "Adventure"},
		UserRating:     8.1,
		TrailerURL:     "https://www.youtube.com/watch?v=n9xhJrPXop4",
		PlotOverview:   "Paul Atreides travels to the most dangerous planet in the universe.",
	}

	out := NewConsoleFormatter().FormatDetails(d)
	assert.Contains(t, out, "Dune (2021)\n")
	assert.Contains(t, out, "├── Type: Movies\n")
	assert.Contains(t, out, "├── Runtime: 2h 35m\n")
	assert.Contains(t, out, "├── Genres: Sci-Fi, Adventure\n")
	assert.Contains(t, out, "├── Original Title: Dune: Part One\n")
	assert.Contains(t, out, "├── Trailer: https://www.youtube.com/watch?v=n9xhJrPXop4\n")
	assert.Contains(t, out, "╰── Overview:\n    Paul Atreides")
}

func TestFormatDetailsMinimal(t *testing.T) {
	out := NewConsoleFormatter().FormatDetails(catalog.TitleDetails{ID: 2, Name: "Unknown"})
	assert.Contains(t, out, "Unknown\n")
	assert.Contains(t, out, "├── Runtime: N/A\n")
	assert.Contains(t, out, "╰── Genres: N/A\n")
	assert.NotContains(t, out, "Overview")
	assert.NotContains(t, out, "Type:")
}

func TestFormatDetailState(t *testing.T) {
	f := NewConsoleFormatter()

	assert.Equal(t, LoadingMessage, f.FormatDetailState(loadstate.Loading[catalog.TitleDetails](1), FormatOptions{}))

	failed := loadstate.Failed[catalog.TitleDetails](1, loadstate.NewErrorInfo(errors.New("connection refused")))
	assert.Equal(t, "Error: Network error: connection refused", f.FormatDetailState(failed, FormatOptions{}))

	loaded := loadstate.Loaded(1, catalog.TitleDetails{ID: 1, Name: "Dune"})
	assert.Contains(t, f.FormatDetailState(loaded, FormatOptions{}), "Dune")
}

func TestFormatErrorNil(t *testing.T) {
	assert.Equal(t, "Error: unknown error", NewConsoleFormatter().FormatError(nil, FormatOptions{}))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, wrap("   ", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"supercalifragilistic"}, wrap("supercalifragilistic", 5))
}
