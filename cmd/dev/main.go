package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"listingdash/adapters/csvframe"
	"listingdash/domain/listing"
	"listingdash/internal/config"
	"listingdash/internal/container"
	"listingdash/internal/filter"
	"listingdash/internal/panels"
	"listingdash/internal/testkit"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "listingdash-dev",
		Short: "Development tools for the listings dashboard",
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	genConfig := testkit.DefaultListingConfig()
	var output string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a synthetic listings CSV so the dashboard runs without the real dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateSeedData(output, genConfig)
		},
	}

	cmd.Flags().StringVar(&output, "output", config.DefaultDatasetPaths[0], "Destination CSV path")
	cmd.Flags().IntVar(&genConfig.Count, "count", genConfig.Count, "Number of listings")
	cmd.Flags().Int64Var(&genConfig.Seed, "seed", genConfig.Seed, "Random seed for deterministic output")
	return cmd
}

func generateSeedData(output string, genConfig testkit.ListingGeneratorConfig) error {
	fmt.Printf("Generating %s synthetic listings...\n", humanize.Comma(int64(genConfig.Count)))

	rows := testkit.NewListingGenerator(genConfig).Generate()

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer f.Close()

	if err := csvframe.NewWriter().Write(f, rows); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Seed data written to %s\n", output)
	return nil
}

func newSmokeTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Load the configured dataset and render every panel once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmokeTests(cmd.Context())
		},
	}
}

func runSmokeTests(ctx context.Context) error {
	fmt.Println("Running smoke tests...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c, err := container.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	ds, err := c.Dashboard.Dataset(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %s of %s rows from %s in %s (price cap $%.0f)\n",
		humanize.Comma(int64(ds.Len())), humanize.Comma(int64(ds.RawCount)), ds.SourcePath, time.Since(start), ds.Threshold)

	start = time.Now()
	page, err := c.Dashboard.Render(ctx, filter.DefaultState(ds))
	if err != nil {
		return err
	}
	panelCount := len(page.Interactive)
	for _, tab := range page.Tabs {
		panelCount += len(tab.Panels)
	}
	fmt.Printf("Rendered %d panels for %s listings in %s\n", panelCount, humanize.Comma(int64(page.Metrics.Count)), time.Since(start))

	if ds.Len() > 0 {
		full := listing.NewView(ds.Listings)
		var blank []string
		for _, p := range panels.NewCatalog(c.Panels).All() {
			if p.Render(full).Empty() {
				blank = append(blank, p.ID)
			}
		}
		if len(blank) > 0 {
			return fmt.Errorf("panels without data on the full dataset: %v", blank)
		}
	}

	fmt.Println("Smoke tests passed")
	return nil
}
