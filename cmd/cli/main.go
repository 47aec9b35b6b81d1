package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"listingdash/domain/listing"
	"listingdash/internal/config"
	"listingdash/internal/container"
	"listingdash/internal/filter"
	"listingdash/internal/panels"
	"listingdash/internal/profiling"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// filterFlags mirror the dashboard sidebar widgets
type filterFlags struct {
	priceLo   int
	priceHi   int
	roomTypes []string
	boroughs  []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.priceLo, "price-lo", filter.DefaultPriceLo, "Lower price bound in dollars")
	cmd.Flags().IntVar(&f.priceHi, "price-hi", filter.DefaultPriceHi, "Upper price bound in dollars")
	cmd.Flags().StringSliceVar(&f.roomTypes, "room-type", nil, "Room types to keep (default: all)")
	cmd.Flags().StringSliceVar(&f.boroughs, "borough", nil, "Boroughs to keep (default: all)")
}

// query converts the flags to the same parameters the web form submits.
// Multiselects left unset keep every value.
func (f *filterFlags) query(cmd *cobra.Command) url.Values {
	q := url.Values{}
	q.Set(filter.ParamPriceLo, strconv.Itoa(f.priceLo))
	q.Set(filter.ParamPriceHi, strconv.Itoa(f.priceHi))
	if cmd.Flags().Changed("room-type") {
		q[filter.ParamRoomType] = append([]string{}, f.roomTypes...)
	}
	if cmd.Flags().Changed("borough") {
		q[filter.ParamBorough] = append([]string{}, f.boroughs...)
	}
	return q
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "listingdash-cli",
		Short:         "Query the NYC listings dataset from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newTopCmd(),
		newExportCmd(),
	)
	return rootCmd
}

func newContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func newSummaryCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the listing count, average and median price for a filter",
		Long: `Print the same headline metrics the dashboard shows.

Example: listingdash-cli summary --price-lo 50 --price-hi 200 --borough Manhattan,Brooklyn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), cmd.OutOrStdout(), flags.query(cmd))
		},
	}
	flags.register(cmd)
	return cmd
}

func runSummary(ctx context.Context, out io.Writer, q url.Values) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	state, err := c.Dashboard.StateFromQuery(ctx, q)
	if err != nil {
		return err
	}
	view, err := c.Dashboard.View(ctx, state)
	if err != nil {
		return err
	}
	ds, err := c.Dashboard.Dataset(ctx)
	if err != nil {
		return err
	}

	m := profiling.Summarize(view)
	fmt.Fprintf(out, "Loaded %s listings from %s\n", humanize.Comma(int64(ds.Len())), ds.SourcePath)
	fmt.Fprintf(out, "Price: $%d - $%d\n", state.PriceLo, state.PriceHi)
	fmt.Fprintf(out, "Listings: %s\n", humanize.Comma(int64(m.Count)))
	fmt.Fprintf(out, "Avg Price: %s\n", dollars(m.Defined, m.MeanPrice))
	fmt.Fprintf(out, "Median: %s\n", dollars(m.Defined, m.MedianPrice))
	return nil
}

func dollars(defined bool, v float64) string {
	if !defined {
		return "—"
	}
	return fmt.Sprintf("$%.0f", v)
}

var groupKeys = map[string]func(listing.Listing) string{
	"neighbourhoods": func(l listing.Listing) string { return l.Neighbourhood },
	"hosts":          func(l listing.Listing) string { return l.HostName },
	"boroughs":       func(l listing.Listing) string { return l.Borough },
	"room-types":     func(l listing.Listing) string { return l.RoomType },
}

func newTopCmd() *cobra.Command {
	var flags filterFlags
	var n int

	cmd := &cobra.Command{
		Use:   "top [neighbourhoods|hosts|boroughs|room-types]",
		Short: "Print the most frequent values of a column in the filtered listings",
		Long: `Count listings per value and print the largest groups. Ties keep the order
in which values first appear in the dataset.

Example: listingdash-cli top hosts -n 8`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"neighbourhoods", "hosts", "boroughs", "room-types"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := groupKeys[args[0]]
			if !ok {
				return fmt.Errorf("unknown column %q", args[0])
			}
			return runTop(cmd.Context(), cmd.OutOrStdout(), flags.query(cmd), key, n)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&n, "limit", "n", 10, "Number of groups to print")
	return cmd
}

func runTop(ctx context.Context, out io.Writer, q url.Values, key func(listing.Listing) string, n int) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	state, err := c.Dashboard.StateFromQuery(ctx, q)
	if err != nil {
		return err
	}
	view, err := c.Dashboard.View(ctx, state)
	if err != nil {
		return err
	}

	for i, count := range panels.TopN(view, key, n) {
		fmt.Fprintf(out, "%2d. %-30s %s\n", i+1, count.Key, humanize.Comma(int64(count.N)))
	}
	return nil
}

func newExportCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "export [output.xlsx]",
		Short: "Write the filtered listings to a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout(), flags.query(cmd), args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runExport(ctx context.Context, out io.Writer, q url.Values, path string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	state, err := c.Dashboard.StateFromQuery(ctx, q)
	if err != nil {
		return err
	}
	view, err := c.Dashboard.View(ctx, state)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := c.Exporter.Export(f, view); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s listings to %s\n", humanize.Comma(int64(view.Len())), path)
	return f.Close()
}
