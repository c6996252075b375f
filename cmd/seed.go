package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wandergenie/wandergenie/internal/app"
	"github.com/wandergenie/wandergenie/internal/seed"
)

var seedPopular bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the knowledge base with bundled sample guides",
	Long: `Seed ingests the bundled city guides (` + strings.Join(seed.Destinations(), ", ") + `)
so a fresh database has something to retrieve from. Re-running adds new
chunks; it does not replace earlier ones.

With --popular it instead generates guides for ` + fmt.Sprint(len(seed.Popular())) + ` well-known
destinations through the model, skipping cities that already have
knowledge stored. Expect this to take a while.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedPopular, "popular", false, "generate guides for popular destinations via the model")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if seedPopular {
		return runSeedPopular(cmd, a)
	}

	total, err := seed.Seed(ctx, a.Ingestor, a.Logger)
	if err != nil {
		return fmt.Errorf("seeding sample data: %w", err)
	}

	fmt.Printf("Seeded %d chunks across %d destinations\n", total, len(seed.Destinations()))
	return nil
}

func runSeedPopular(cmd *cobra.Command, a *app.App) error {
	ctx := cmd.Context()
	destinations := seed.Popular()

	var failed []string
	for i, dest := range destinations {
		fmt.Printf("[%d/%d] %s\n", i+1, len(destinations), dest)
		if err := a.Bootstrapper.EnsureDestination(ctx, dest); err != nil {
			a.Logger.Warn("destination failed", "destination", dest, "error", err)
			failed = append(failed, dest)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	fmt.Printf("Generated guides for %d/%d destinations\n", len(destinations)-len(failed), len(destinations))
	if len(failed) > 0 {
		return fmt.Errorf("%d destinations failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}
