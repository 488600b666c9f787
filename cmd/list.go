package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/filter"
	"github.com/s0up4200/titlewatch/loadstate"
	"github.com/s0up4200/titlewatch/titles"
	"github.com/s0up4200/titlewatch/view"
)

var (
	// list command flags
	listType   string
	listLimit  int
	filterExpr string
	preset     string
	noPrompt   bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List popular movies and TV shows",
	Long: `List movies and TV shows from the catalog. Every title is enriched with its
details, titles whose details cannot be loaded are left out.

Examples:
  titlewatch list
  titlewatch list --type shows --limit 5
  titlewatch list --filter 'UserRating >= 8 and Year > 2015'
  titlewatch list --preset acclaimed`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "both", "categories to list: movies, shows or both")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "titles per category (default from config)")
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "fail without asking to retry")
}

// categoryLoader loads a single category through the list controller
type categoryLoader struct {
	loader   *titles.DualLoader
	category catalog.Category
}

func (c categoryLoader) LoadBoth(ctx context.Context, limit int) (titles.Catalog, error) {
	return c.loader.LoadCategory(ctx, c.category, limit)
}

func runList(cmd *cobra.Command, args []string) error {
	categories, err := parseListType(listType)
	if err != nil {
		return err
	}

	f, err := getFilter()
	if err != nil {
		return err
	}

	limit := cfg.Display.Limit
	if cmd.Flags().Changed("limit") {
		limit = listLimit
	}
	if limit < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}

	var loader loadstate.CatalogLoader = dualLoader
	if len(categories) == 1 {
		loader = categoryLoader{loader: dualLoader, category: categories[0]}
	}

	lc := loadstate.NewListController(loader, limit, logger, loadstate.WithTimeout(cfg.Display.LoadTimeout))
	defer lc.Close()

	updates, unsubscribe := lc.Subscribe()
	defer unsubscribe()
	go watchStates(updates, "list")

	logger.Info().
		Str("type", listType).
		Int("limit", limit).
		Msg("Loading titles")

	options := view.FormatOptions{ShowDetails: cfg.Display.ShowDetails, RetryHint: !noPrompt}
	render := func(s loadstate.State[titles.Catalog]) string {
		return formatter.FormatListState(s, categories, options)
	}

	state := loadWithRetry(cmd.Context(), lc, render, !noPrompt, os.Stdin, os.Stdout)
	if state.IsFailed() {
		return fmt.Errorf("failed to load titles: %w", state.Err)
	}

	result := state.Data
	if f != nil {
		logger.Info().Str("filter", f.Expression()).Msg("Applying filter")
		result = titles.Catalog{
			Movies: f.Apply(result.Movies),
			Shows:  f.Apply(result.Shows),
		}
	}

	fmt.Print(formatter.FormatCatalog(result, categories, options))
	return nil
}

// parseListType converts the --type flag into the categories to show
func parseListType(value string) ([]catalog.Category, error) {
	if strings.EqualFold(strings.TrimSpace(value), "both") {
		return catalog.Categories, nil
	}

	category, err := catalog.ParseCategory(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --type: %w", err)
	}
	return []catalog.Category{category}, nil
}

// getFilter determines the filter to apply, or nil for none.
// Priority: command line filter > preset > default.
func getFilter() (*filter.Filter, error) {
	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if preset != "" {
		return presets.Get(preset)
	}

	if cfg.Filter.DefaultExpression != "" {
		f, err := filter.Compile(cfg.Filter.DefaultExpression)
		if err != nil {
			return nil, fmt.Errorf("invalid filter.default_expression: %w", err)
		}
		return f, nil
	}

	return nil, nil
}
