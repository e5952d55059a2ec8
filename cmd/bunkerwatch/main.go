// bunkerwatch — Ship & Bunker price collector
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seenimoa/bunkerwatch/internal/collector"
	"github.com/seenimoa/bunkerwatch/internal/config"
	"github.com/seenimoa/bunkerwatch/internal/fetch"
	"github.com/seenimoa/bunkerwatch/internal/infra"
	"github.com/seenimoa/bunkerwatch/internal/logger"
	"github.com/seenimoa/bunkerwatch/internal/news"
	"github.com/seenimoa/bunkerwatch/internal/scrape"
	"github.com/seenimoa/bunkerwatch/internal/storage"
	"github.com/seenimoa/bunkerwatch/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bunkerwatch",
	Short: "bunkerwatch — Ship & Bunker fuel price collector",
	Long: `bunkerwatch scrapes marine fuel prices, methanol bunker prices, and
EUA compliance costs from shipandbunker.com and appends timestamped
rows to per-category CSV files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(newsCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bunkerwatch %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Scrape Command ---

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape cycle and append results to the CSV sinks",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := fetch.NewHTTPFetcher(
			cfg.Fetch.Timeout(),
			infra.RetryPolicy{MaxAttempts: cfg.Fetch.MaxAttempts, Delay: cfg.Fetch.RetryDelay()},
			cfg.Fetch.RatePerSec,
		)
		scraper := scrape.New(fetcher, cfg.Source.BaseURL, cfg.Source.MethanolBlock, cfg.Source.EUABlock)

		fuelTypes := make([]models.FuelType, 0, len(cfg.Source.FuelTypes))
		for _, ft := range cfg.Source.FuelTypes {
			fuelTypes = append(fuelTypes, models.FuelType(ft))
		}

		c := collector.New(scraper, storage.CSVSink{}, cfg.Output, fuelTypes)
		summary, err := c.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Scrape cycle %s UTC\n", summary.Timestamp)
		fmt.Printf("  Fuel prices:      %d records\n", summary.FuelPrices)
		fmt.Printf("  Methanol prices:  %d records\n", summary.MethanolPrices)
		fmt.Printf("  Compliance costs: %d records\n", summary.ComplianceCosts)
		fmt.Printf("  Total:            %d records\n", summary.Total())
		return nil
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show the latest bunker industry headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.News.Limit
		}

		articles, err := news.NewService(cfg.News.FeedURL).Latest(cmd.Context(), limit)
		if err != nil {
			return err
		}

		for _, a := range articles {
			fmt.Printf("%s  %s\n", a.PublishedAt.Format("2006-01-02"), a.Title)
			if a.Summary != "" {
				fmt.Printf("    %s\n", a.Summary)
			}
			fmt.Printf("    %s\n", a.URL)
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("limit", 0, "maximum number of headlines (default from config)")
}
