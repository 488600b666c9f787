package catalog

import (
	"fmt"
	"strings"
)

// Category represents the kind of content a title belongs to
type Category string

const (
	// CategoryMovie represents feature films
	CategoryMovie Category = "movie"
	// CategorySeries represents TV series
	CategorySeries Category = "series"
)

// Categories lists every supported category in display order
var Categories = []Category{CategoryMovie, CategorySeries}

// Valid checks if the category is one the API understands
func (c Category) Valid() bool {
	return c == CategoryMovie || c == CategorySeries
}

// APIType returns the value sent in the list endpoint's types parameter
func (c Category) APIType() string {
	switch c {
	case CategoryMovie:
		return "movie"
	case CategorySeries:
		return "tv_series"
	default:
		return ""
	}
}

// DisplayName returns the heading used when rendering the category
func (c Category) DisplayName() string {
	switch c {
	case CategoryMovie:
		return "Movies"
	case CategorySeries:
		return "TV Shows"
	default:
		return string(c)
	}
}

// ParseCategory converts user input into a Category
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film", "films":
		return CategoryMovie, nil
	case "series", "show", "shows", "tv", "tv_series":
		return CategorySeries, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// CategoryFromAPIType maps a record's type field to a Category.
// Every tv_* variant (tv_series, tv_miniseries, tv_special, ...) is a series.
func CategoryFromAPIType(t string) Category {
	if strings.HasPrefix(strings.ToLower(t), "tv_") {
		return CategorySeries
	}
	return CategoryMovie
}

// TitleSummary is a catalog entry as shown in listings.
// Zero values mean the API did not provide the field.
type TitleSummary struct {
	ID                  int64
	Name                string
	OriginalName        string
	Category            Category
	IMDbID              string
	TMDbID              int64
	TMDbCategory        string
	Year                int
	ReleaseDate         string
	PosterURL           string
	UserRating          float64
	CriticScore         int
	RelevancePercentile float64
}

// DisplayRating formats the user rating with one decimal, or N/A
func (t TitleSummary) DisplayRating() string {
	return displayRating(t.UserRating)
}

// HasPoster checks if a poster URL is known for the title
func (t TitleSummary) HasPoster() bool {
	return t.PosterURL != ""
}

// TitleDetails is the full record for a single title
type TitleDetails struct {
	ID                  int64
	Name                string
	OriginalName        string
	Category            Category
	PlotOverview        string
	RuntimeMinutes      int
	Year                int
	ReleaseDate         string
	PosterURL           string
	BackdropURL         string
	GenreIDs            []int
	GenreNames          []string
	UserRating          float64
	CriticScore         int
	IMDbID              string
	TMDbID              int64
	TMDbCategory        string
	TrailerURL          string
	TrailerThumbnailURL string
}

// DisplayRating formats the user rating with one decimal, or N/A
func (d TitleDetails) DisplayRating() string {
	return displayRating(d.UserRating)
}

// DisplayRuntime formats the runtime as "2h 5m", "45m" or N/A
func (d TitleDetails) DisplayRuntime() string {
	if d.RuntimeMinutes <= 0 {
		return "N/A"
	}
	hours := d.RuntimeMinutes / 60
	minutes := d.RuntimeMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// GenresString joins the genre names, or returns N/A when there are none
func (d TitleDetails) GenresString() string {
	if len(d.GenreNames) == 0 {
		return "N/A"
	}
	return strings.Join(d.GenreNames, ", ")
}

// Summary projects the details onto a TitleSummary. The poster always comes
// from the details record since listings do not reliably include one.
func (d TitleDetails) Summary() TitleSummary {
	return TitleSummary{
		ID:           d.ID,
		Name:         d.Name,
		OriginalName: d.OriginalName,
		Category:     d.Category,
		IMDbID:       d.IMDbID,
		TMDbID:       d.TMDbID,
		TMDbCategory: d.TMDbCategory,
		Year:         d.Year,
		ReleaseDate:  d.ReleaseDate,
		PosterURL:    d.PosterURL,
		UserRating:   d.UserRating,
		CriticScore:  d.CriticScore,
	}
}

func displayRating(rating float64) string {
	if rating == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", rating)
}

// listTitlesResponse is the body of the list-titles endpoint. Titles is a
// pointer so a missing array can be told apart from an empty one.
type listTitlesResponse struct {
	Titles *[]apiTitle `json:"titles"`
}

// apiTitle is a single entry of the list-titles endpoint
type apiTitle struct {
	ID                  int64   `json:"id"`
	Title               string  `json:"title"`
	OriginalTitle       string  `json:"original_title,omitempty"`
	Type                string  `json:"type"`
	IMDbID              string  `json:"imdb_id,omitempty"`
	TMDbID              int64   `json:"tmdb_id,omitempty"`
	TMDbType            string  `json:"tmdb_type,omitempty"`
	Year                int     `json:"year,omitempty"`
	ReleaseDate         string  `json:"release_date,omitempty"`
	Poster              string  `json:"poster,omitempty"`
	UserRating          float64 `json:"user_rating,omitempty"`
	CriticScore         int     `json:"critic_score,omitempty"`
	RelevancePercentile float64 `json:"relevance_percentile,omitempty"`
}

func (a apiTitle) validate() error {
	if a.ID < 1 {
		return fmt.Errorf("title entry missing id")
	}
	if a.Title == "" {
		return fmt.Errorf("title %d missing name", a.ID)
	}
	return nil
}

func (a apiTitle) toSummary() TitleSummary {
	return TitleSummary{
		ID:                  a.ID,
		Name:                a.Title,
		OriginalName:        a.OriginalTitle,
		Category:            CategoryFromAPIType(a.Type),
		IMDbID:              a.IMDbID,
		TMDbID:              a.TMDbID,
		TMDbCategory:        a.TMDbType,
		Year:                a.Year,
		ReleaseDate:         a.ReleaseDate,
		PosterURL:           a.Poster,
		UserRating:          a.UserRating,
		CriticScore:         a.CriticScore,
		RelevancePercentile: a.RelevancePercentile,
	}
}

// apiTitleDetails is the body of the title details endpoint
type apiTitleDetails struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title,omitempty"`
	PlotOverview     string   `json:"plot_overview,omitempty"`
	Type             string   `json:"type"`
	RuntimeMinutes   int      `json:"runtime_minutes,omitempty"`
	Year             int      `json:"year,omitempty"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	Poster           string   `json:"poster,omitempty"`
	Backdrop         string   `json:"backdrop,omitempty"`
	Genres           []int    `json:"genres,omitempty"`
	GenreNames       []string `json:"genre_names,omitempty"`
	UserRating       float64  `json:"user_rating,omitempty"`
	CriticScore      int      `json:"critic_score,omitempty"`
	IMDbID           string   `json:"imdb_id,omitempty"`
	TMDbID           int64    `json:"tmdb_id,omitempty"`
	TMDbType         string   `json:"tmdb_type,omitempty"`
	Trailer          string   `json:"trailer,omitempty"`
	TrailerThumbnail string   `json:"trailer_thumbnail,omitempty"`
}

// toDetails leaves Category empty when the record has no type, so callers can
// fall back to the category the title was listed under.
func (a apiTitleDetails) toDetails() TitleDetails {
	runtime := a.RuntimeMinutes
	if runtime < 0 {
		runtime = 0
	}
	var category Category
	if a.Type != "" {
		category = CategoryFromAPIType(a.Type)
	}
	return TitleDetails{
		ID:                  a.ID,
		Name:                a.Title,
		OriginalName:        a.OriginalTitle,
		Category:            category,
		PlotOverview:        a.PlotOverview,
		RuntimeMinutes:      runtime,
		Year:                a.Year,
		ReleaseDate:         a.ReleaseDate,
		PosterURL:           a.Poster,
		BackdropURL:         a.Backdrop,
		GenreIDs:            a.Genres,
		GenreNames:          a.GenreNames,
		UserRating:          a.UserRating,
		CriticScore:         a.CriticScore,
		IMDbID:              a.IMDbID,
		TMDbID:              a.TMDbID,
		TMDbCategory:        a.TMDbType,
		TrailerURL:          a.Trailer,
		TrailerThumbnailURL: a.TrailerThumbnail,
	}
}
