// Package view renders titles and load states for the terminal.
package view

import (
	"fmt"
	"strings"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/loadstate"
	"github.com/s0up4200/titlewatch/titles"
)

const (
	// EmptyMessage is shown for a successful load that returned no titles
	EmptyMessage = "No titles found"
	// LoadingMessage is shown while a load is in flight
	LoadingMessage = "Loading..."
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	// RetryHint is appended to error output when the error is retryable
	RetryHint bool
}

// Formatter defines the interface for formatting catalog output
type Formatter interface {
	FormatTitleList(category catalog.Category, list []catalog.TitleSummary, options FormatOptions) string
	FormatCatalog(c titles.Catalog, categories []catalog.Category, options FormatOptions) string
	FormatListState(state loadstate.State[titles.Catalog], categories []catalog.Category, options FormatOptions) string
	FormatDetails(details catalog.TitleDetails) string
	FormatDetailState(state loadstate.State[catalog.TitleDetails], options FormatOptions) string
}

var _ Formatter = (*ConsoleFormatter)(nil)

// ConsoleFormatter provides console output formatting for titles
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatTitleList formats one category's titles as a tree
func (f *ConsoleFormatter) FormatTitleList(category catalog.Category, list []catalog.TitleSummary, options FormatOptions) string {
	if len(list) == 0 {
		return fmt.Sprintf("\n%s: %s\n", category.DisplayName(), EmptyMessage)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", category.DisplayName(), len(list))

	for i, title := range list {
		isLast := i == len(list)-1
		f.formatTitle(&sb, title, isLast, options)

		if !isLast {
			sb.WriteString("\u2502\n")
		}
	}

	return sb.String()
}

// FormatCatalog formats the requested categories of a loaded catalog
func (f *ConsoleFormatter) FormatCatalog(c titles.Catalog, categories []catalog.Category, options FormatOptions) string {
	var sb strings.Builder
	for _, category := range categories {
		sb.WriteString(f.FormatTitleList(category, c.For(category), options))
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatListState renders whatever the list controller currently holds
func (f *ConsoleFormatter) FormatListState(state loadstate.State[titles.Catalog], categories []catalog.Category, options FormatOptions) string {
	switch state.Status {
	case loadstate.StatusLoading:
		return LoadingMessage
	case loadstate.StatusFailed:
		return f.FormatError(state.Err, options)
	case loadstate.StatusLoaded:
		return f.FormatCatalog(state.Data, categories, options)
	default:
		return ""
	}
}

// FormatDetails formats a single title's details
func (f *ConsoleFormatter) FormatDetails(d catalog.TitleDetails) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", d.Name)
	if d.Year > 0 {
		fmt.Fprintf(&sb, " (%d)", d.Year)
	}
	sb.WriteString("\n")

	var lines [][2]string
	if d.Category != "" {
		lines = append(lines, [2]string{"Type", d.Category.DisplayName()})
	}
	lines = append(lines, [][2]string{
		{"Rating", d.DisplayRating()},
		{"Runtime", d.DisplayRuntime()},
		{"Genres", d.GenresString()},
	}...)
	if d.OriginalName != "" && d.OriginalName != d.Name {
		lines = append(lines, [2]string{"Original Title", d.OriginalName})
	}
	if d.ReleaseDate != "" {
		lines = append(lines, [2]string{"Released", d.ReleaseDate})
	}
	if d.CriticScore > 0 {
		lines = append(lines, [2]string{"Critic Score", fmt.Sprintf("%d", d.CriticScore)})
	}
	if d.IMDbID != "" {
		lines = append(lines, [2]string{"IMDb", d.IMDbID})
	}
	if d.PosterURL != "" {
		lines = append(lines, [2]string{"Poster", d.PosterURL})
	}
	if d.TrailerURL != "" {
		lines = append(lines, [2]string{"Trailer", d.TrailerURL})
	}

	for i, line := range lines {
		prefix := "\u251c"
		if i == len(lines)-1 && d.PlotOverview == "" {
			prefix = "\u2570"
		}
		fmt.Fprintf(&sb, "%s\u2500\u2500 %s: %s\n", prefix, line[0], line[1])
	}

	if d.PlotOverview != "" {
		sb.WriteString("\u2570\u2500\u2500 Overview:\n")
		for _, line := range wrap(d.PlotOverview, 72) {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatDetailState renders whatever the detail controller currently holds
func (f *ConsoleFormatter) FormatDetailState(state loadstate.State[catalog.TitleDetails], options FormatOptions) string {
	switch state.Status {
	case loadstate.StatusLoading:
		return LoadingMessage
	case loadstate.StatusFailed:
		return f.FormatError(state.Err, options)
	case loadstate.StatusLoaded:
		return f.FormatDetails(state.Data)
	default:
		return ""
	}
}

// FormatError formats a failed load for the user
func (f *ConsoleFormatter) FormatError(info *loadstate.ErrorInfo, options FormatOptions) string {
	if info == nil {
		return "Error: unknown error"
	}

	msg := "Error: " + info.Message
	if options.RetryHint && info.Retryable() {
		msg += "\nThe request can be retried."
	}
	return msg
}

// formatTitle formats a single title entry
func (f *ConsoleFormatter) formatTitle(sb *strings.Builder, title catalog.TitleSummary, isLast bool, options FormatOptions) {
	prefix := "\u251c"
	if isLast {
		prefix = "\u2570"
	}

	fmt.Fprintf(sb, "%s\u2500\u2500 %s", prefix, title.Name)
	if title.Year > 0 {
		fmt.Fprintf(sb, " (%d)", title.Year)
	}
	fmt.Fprintf(sb, " [%d]\n", title.ID)

	if !options.ShowDetails {
		return
	}

	indent := "\u2502   "
	if isLast {
		indent = "    "
	}

	info := []string{"Rating: " + title.DisplayRating()}
	if title.CriticScore > 0 {
		info = append(info, fmt.Sprintf("Critics: %d", title.CriticScore))
	}
	if title.ReleaseDate != "" {
		info = append(info, "Released: "+title.ReleaseDate)
	}
	fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(info, " | "))

	if title.HasPoster() {
		fmt.Fprintf(sb, "%sPoster: %s\n", indent, title.PosterURL)
	}
}

// wrap splits text into lines of at most width runes, breaking on spaces
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
