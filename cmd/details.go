package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/titlewatch/catalog"
	"github.com/s0up4200/titlewatch/loadstate"
	"github.com/s0up4200/titlewatch/view"
)

// detailsCmd represents the details command
var detailsCmd = &cobra.Command{
	Use:   "details <id>",
	Short: "Show the details of a title",
	Long:  `Show the full details of a single title, identified by the id printed by the list command.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDetails,
}

func init() {
	detailsCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "fail without asking to retry")
}

func runDetails(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid title id %q: %w", args[0], catalog.ErrInvalidID)
	}

	dc := loadstate.NewDetailController(catalogClient, id, logger, loadstate.WithTimeout(cfg.Display.LoadTimeout))
	defer dc.Close()

	updates, unsubscribe := dc.Subscribe()
	defer unsubscribe()
	go watchStates(updates, "details")

	options := view.FormatOptions{RetryHint: !noPrompt}
	render := func(s loadstate.State[catalog.TitleDetails]) string {
		return formatter.FormatDetailState(s, options)
	}

	state := loadWithRetry(cmd.Context(), dc, render, !noPrompt, os.Stdin, os.Stdout)
	if state.IsFailed() {
		return fmt.Errorf("failed to load title details: %w", state.Err)
	}

	fmt.Print(render(state))
	return nil
}
