package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const releaseRepository = "s0up4200/titlewatch"

var checkOnly bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:         "update",
	Short:       "Update titlewatch to the latest release",
	Long:        `Check GitHub for a newer release of titlewatch and replace the running binary with it.`,
	Annotations: map[string]string{skipInitAnnotation: ""},
	RunE:        runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := parseVersion(appVersion)
	if err != nil {
		return fmt.Errorf("cannot update a development build: %w", err)
	}

	ctx := cmd.Context()
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(releaseRepository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", releaseRepository)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Printf("titlewatch v%s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Printf("titlewatch %s is available (current v%s)\n", latest.Version(), current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().
		Str("from", current.String()).
		Str("to", latest.Version()).
		Msg("Updating")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Printf("Updated to titlewatch %s\n", latest.Version())
	return nil
}
