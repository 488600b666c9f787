package filter

import (
	"strings"

	"github.com/s0up4200/titlewatch/catalog"
)

// newEnv builds the variables and helpers an expression can reference
func newEnv(title catalog.TitleSummary) map[string]any {
	env := make(map[string]any, 24)

	// String helpers, case-insensitive like the rest of the CLI
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper

	// Category helpers
	category := title.Category
	env["isMovie"] = func() bool {
		return category == catalog.CategoryMovie
	}
	env["isSeries"] = func() bool {
		return category == catalog.CategorySeries
	}

	// Title properties
	env["ID"] = title.ID
	env["Name"] = title.Name
	env["OriginalName"] = title.OriginalName
	env["Category"] = string(title.Category)
	env["Year"] = title.Year
	env["ReleaseDate"] = title.ReleaseDate
	env["UserRating"] = title.UserRating
	env["CriticScore"] = title.CriticScore
	env["RelevancePercentile"] = title.RelevancePercentile
	env["IMDbID"] = title.IMDbID
	env["TMDbID"] = title.TMDbID
	env["HasPoster"] = title.HasPoster()

	return env
}
