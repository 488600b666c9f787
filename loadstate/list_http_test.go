package loadstate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/titles"
)

// newHTTPListController wires a ListController to a real catalog client
func newHTTPListController(t *testing.T, handler http.HandlerFunc) *ListController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := catalog.NewClient(server.URL, "test-key", zerolog.Nop(), catalog.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	agg := titles.NewAggregator(client, zerolog.Nop())
	lc := NewListController(titles.NewDualLoader(agg, zerolog.Nop()), 3, zerolog.Nop())
	t.Cleanup(lc.Close)
	return lc
}

func TestListControllerServerErrorOverHTTP(t *testing.T) {
	lc := newHTTPListController(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	state := lc.Load(context.Background())
	require.True(t, state.IsFailed())
	assert.Equal(t, catalog.KindServerStatus, state.Err.Kind)
	assert.Equal(t, 500, state.Err.StatusCode)
	assert.Equal(t, "Server error with code: 500", state.Err.Message)
	assert.Equal(t, titles.Catalog{}, state.Data)
}

func TestListControllerLoadedOverHTTP(t *testing.T) {
	lc := newHTTPListController(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/list-titles/" && r.URL.Query().Get("types") == "movie":
			_, _ = w.Write([]byte(`{"titles": [{"id": 1, "title": "Dune", "type": "movie"}, {"id": 2, "title": "Heat", "type": "movie"}]}`))
		case r.URL.Path == "/list-titles/":
			_, _ = w.Write([]byte(`{"titles": [{"id": 3, "title": "Dark", "type": "tv_series"}]}`))
		case r.URL.Path == "/title/2/details/":
			w.WriteHeader(http.StatusNotFound)
		case strings.HasPrefix(r.URL.Path, "/title/"):
			var id int64
			_, _ = fmt.Sscanf(r.URL.Path, "/title/%d/details/", &id)
			_, _ = fmt.Fprintf(w, `{"id": %d, "title": "Title %d", "poster": "https://cdn.example.com/%d.jpg"}`, id, id, id)
		default:
			http.NotFound(w, r)
		}
	})

	state := lc.Load(context.Background())
	require.True(t, state.IsLoaded())

	require.Len(t, state.Data.Movies, 1, "the title whose details failed is dropped")
	assert.Equal(t, int64(1), state.Data.Movies[0].ID)
	assert.Equal(t, "https://cdn.example.com/1.jpg", state.Data.Movies[0].PosterURL)

	require.Len(t, state.Data.Shows, 1)
	assert.Equal(t, catalog.CategorySeries, state.Data.Shows[0].Category)
}
