package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the catalog API",
	Long:  `Test the connection to the catalog API and verify the configured API key.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", catalogClient.BaseURL())

	if err := catalogClient.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("- Titles per category: %d\n", cfg.Display.Limit)
	fmt.Printf("- Rate limit: %s\n", rateLimitString(cfg.Catalog.RateLimit))
	fmt.Printf("- Filter presets: %d\n", len(presets.Names()))
	for _, name := range presets.Names() {
		fmt.Printf("  • %s: %s\n", name, cfg.Filter.Presets[name].Expression)
	}

	return nil
}

func rateLimitString(rps int) string {
	if rps <= 0 {
		return "Disabled"
	}
	return fmt.Sprintf("%d requests/sec", rps)
}
