package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"boacompra-loader/services"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type seedFlags struct {
	customers   int
	addresses   int
	products    int
	orders      int
	maxItems    int
	maxDiscount string
	randomSeed  int64
	csvPath     string
	strict      bool
}

var seedCfg seedFlags

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load synthetic data into every empty table, in dependency order",
	Long: `Runs the generation pipeline: states, municipalities, customers and their
addresses, emails and contacts, product categories, units and products, order
statuses, orders and order items, then recomputes order totals.
Tables that already hold rows are left untouched, so the command can be rerun.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedCfg.customers, "customers", 0, "Customers to create (or SEED_CUSTOMERS)")
	seedCmd.Flags().IntVar(&seedCfg.addresses, "addresses", 0, "Customers that get an address (or SEED_ADDRESSES)")
	seedCmd.Flags().IntVar(&seedCfg.products, "products-per-category", 0, "Products per category (or SEED_PRODUCTS_PER_CATEGORY)")
	seedCmd.Flags().IntVar(&seedCfg.orders, "orders", 0, "Orders to create (or SEED_ORDERS)")
	seedCmd.Flags().IntVar(&seedCfg.maxItems, "max-items", 0, "Maximum items per order (or SEED_MAX_ITEMS)")
	seedCmd.Flags().StringVar(&seedCfg.maxDiscount, "max-discount", "", "Discount ceiling as a fraction of the line, e.g. 0.30 (or SEED_MAX_DISCOUNT)")
	seedCmd.Flags().Int64Var(&seedCfg.randomSeed, "seed", 0, "Random seed for a reproducible run (or SEED_RANDOM_SEED)")
	seedCmd.Flags().StringVar(&seedCfg.csvPath, "csv-path", "", "Directory with states.csv and cities.csv (or CSV_BASE_PATH)")
	seedCmd.Flags().BoolVar(&seedCfg.strict, "strict", false, "Exit non-zero when any step fails")
}

func runSeed(cmd *cobra.Command, args []string) error {
	seed := settings.Seed
	flags := cmd.Flags()
	if flags.Changed("customers") {
		seed.Customers = seedCfg.customers
	}
	if flags.Changed("addresses") {
		seed.Addresses = seedCfg.addresses
	}
	if flags.Changed("products-per-category") {
		seed.ProductsPerCategory = seedCfg.products
	}
	if flags.Changed("orders") {
		seed.Orders = seedCfg.orders
	}
	if flags.Changed("max-items") {
		seed.MaxItemsPerOrder = seedCfg.maxItems
	}
	if flags.Changed("max-discount") {
		d, err := decimal.NewFromString(seedCfg.maxDiscount)
		if err != nil {
			return fmt.Errorf("--max-discount: %w", err)
		}
		seed.MaxDiscountFraction = d
	}
	if flags.Changed("seed") {
		seed.RandomSeed = seedCfg.randomSeed
	}
	if flags.Changed("csv-path") {
		seed.CSVBasePath = seedCfg.csvPath
	}

	db, st, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB(db)

	seeder, closeNotifier, err := newSeeder(st, seed)
	if err != nil {
		return err
	}
	defer closeNotifier()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := seeder.Run(ctx)
	printSummary(cmd, summary)

	if failed := summary.Failed(); seedCfg.strict && len(failed) > 0 {
		return fmt.Errorf("%d of %d steps failed", len(failed), len(summary.Steps))
	}
	return nil
}

func printSummary(cmd *cobra.Command, summary services.RunSummary) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run %s (seed %d)\n", summary.RunID, summary.Seed)
	fmt.Fprintln(w, "TABLE\tSTATUS\tROWS\tTOOK\tERROR")
	for _, st := range summary.Steps {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", st.Table, st.Status, st.Rows, st.Duration.Round(time.Millisecond), st.Error)
	}
	w.Flush()
}
