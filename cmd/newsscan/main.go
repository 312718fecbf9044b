// newsscan — trading news ETL pipeline.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/newsscan/internal/config"
	"github.com/seenimoa/newsscan/internal/connectors"
	"github.com/seenimoa/newsscan/internal/logging"
	"github.com/seenimoa/newsscan/internal/pipeline"
	"github.com/seenimoa/newsscan/internal/storage"
	"github.com/seenimoa/newsscan/pkg/models"
	"github.com/seenimoa/newsscan/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg *config.Config
	log *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsscan",
	Short: "newsscan — trading news scanner and ETL pipeline",
	Long: `newsscan ingests news from GDELT, RSS/Atom feeds, and intel sources,
normalizes and enriches it with topic / alert / ticker / region detection,
deduplicates, filters, and persists the result as JSONL or SQLite.`,
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

		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Logging.Level = "debug"
		}
		log, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(storedCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsscan %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Scan Command ---

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the news pipeline",
	Long: `Fetch news from the enabled source groups, normalize, filter,
deduplicate, and store the result.

Examples:
  newsscan scan
  newsscan scan --categories finance,tech
  newsscan scan --alerts-only --max-age-hours 24
  newsscan scan --sqlite ./news.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, _ := cmd.Flags().GetStringSlice("categories")
		noGDELT, _ := cmd.Flags().GetBool("no-gdelt")
		noRSS, _ := cmd.Flags().GetBool("no-rss")
		noIntel, _ := cmd.Flags().GetBool("no-intel")
		alertsOnly, _ := cmd.Flags().GetBool("alerts-only")
		maxAgeHours, _ := cmd.Flags().GetInt("max-age-hours")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		sqlitePath, _ := cmd.Flags().GetString("sqlite")
		appendMode, _ := cmd.Flags().GetBool("append")

		if len(categories) == 0 {
			categories = cfg.Scanner.Categories
		}
		if outputDir == "" {
			outputDir = cfg.Scanner.OutputDir
		}
		if sqlitePath == "" {
			sqlitePath = cfg.Storage.SQLitePath
		}

		opts := pipeline.DefaultOptions()
		opts.UseGDELT = !noGDELT
		opts.UseRSS = !noRSS
		opts.UseIntel = !noIntel
		opts.Categories = categories
		opts.OutputDir = outputDir

		if alertsOnly || maxAgeHours > 0 {
			opts.Filter = &pipeline.FilterConfig{
				AlertsOnly:  alertsOnly,
				MaxAgeHours: maxAgeHours,
			}
		}

		var sink storage.Storage
		if sqlitePath != "" {
			db, err := storage.NewSQLite(sqlitePath, log)
			if err != nil {
				return fmt.Errorf("open sqlite storage: %w", err)
			}
			defer db.Close()
			sink = db
		} else {
			sink = storage.NewJSONLWithTimestamp(outputDir, log)
			if appendMode {
				sink = storage.NewJSONL(sink.Path(), true, log)
			}
		}
		opts.Storage = sink

		rss := connectors.NewRSS(cfg.RSS, cfg.Scanner, log)
		p := pipeline.New(opts, log).
			SetGDELT(connectors.NewGDELT(cfg.GDELT, cfg.Scanner, log)).
			SetRSS(rss).
			SetIntel(rss)

		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("newsscan — Trading News Scanner")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()
		fmt.Printf("Categories: %s\n", strings.Join(categories, ", "))
		fmt.Printf("Sources: GDELT=%t, RSS=%t, Intel=%t\n", !noGDELT, !noRSS, !noIntel)
		fmt.Println()
		fmt.Println("Starting pipeline...")

		result := p.Run(cmd.Context())
		printResults(result, sink.Path())
		fmt.Println("Done!")
		return nil
	},
}

func init() {
	scanCmd.Flags().StringSlice("categories", nil, "categories to fetch (default: from config)")
	scanCmd.Flags().Bool("no-gdelt", false, "skip the GDELT source group")
	scanCmd.Flags().Bool("no-rss", false, "skip the RSS source group")
	scanCmd.Flags().Bool("no-intel", false, "skip the intel source group")
	scanCmd.Flags().Bool("alerts-only", false, "keep only alert items")
	scanCmd.Flags().Int("max-age-hours", 0, "drop items older than this many hours")
	scanCmd.Flags().String("output-dir", "", "JSONL output directory (default: from config)")
	scanCmd.Flags().String("sqlite", "", "persist to a SQLite database at this path instead of JSONL")
	scanCmd.Flags().Bool("append", false, "append to the JSONL output instead of overwriting")
}

// --- Sources Command ---

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured feed sources",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("RSS feeds:")
		for _, category := range config.FeedCategories {
			fmt.Printf("  [%s]\n", category)
			for _, feed := range config.DefaultFeeds[category] {
				fmt.Printf("    %-22s %s\n", feed.Name, feed.URL)
			}
		}
		fmt.Println()
		fmt.Println("Intel sources:")
		for _, src := range config.DefaultIntelSources {
			region := src.Region
			if region == "" {
				region = "-"
			}
			fmt.Printf("  %-18s %-10s region=%-8s %s\n", src.Name, src.SourceType, region, src.URL)
		}
		fmt.Println()
		fmt.Println("GDELT queries:")
		for _, category := range config.GDELTCategories {
			fmt.Printf("  %-10s %s\n", category, config.GDELTQueries[category])
		}
	},
}

// --- Stored Command ---

var storedCmd = &cobra.Command{
	Use:   "stored",
	Short: "Inspect a SQLite news database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("sqlite")
		if path == "" {
			path = cfg.Storage.SQLitePath
		}
		if path == "" {
			return fmt.Errorf("provide a database path with --sqlite")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		db, err := storage.NewSQLite(path, log)
		if err != nil {
			return fmt.Errorf("open sqlite storage: %w", err)
		}
		defer db.Close()

		ctx := cmd.Context()
		total, err := db.Count(ctx)
		if err != nil {
			return err
		}
		sources, err := db.Sources(ctx)
		if err != nil {
			return err
		}
		alerts, err := db.Alerts(ctx)
		if err != nil {
			return err
		}
		recent, err := db.Recent(ctx, limit)
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s\n", path)
		fmt.Printf("Items:    %d\n", total)
		fmt.Printf("Alerts:   %d\n", len(alerts))
		fmt.Printf("Sources:  %d\n", len(sources))
		fmt.Println()
		fmt.Printf("Recent items (%d):\n", len(recent))
		for _, item := range recent {
			fmt.Printf("  %s  %-20s %s\n", item.PublishedAt, utils.Truncate(item.Source, 20), utils.Truncate(item.Title, 60))
		}
		return nil
	},
}

func init() {
	storedCmd.Flags().String("sqlite", "", "database path (default: from config)")
	storedCmd.Flags().Int("limit", 10, "number of recent items to show")
}

// --- Result report ---

// printResults renders the pipeline outcome: stage counters, errors, a
// sample of items, alerts, and topic/source distributions.
func printResults(result *models.PipelineResult, storagePath string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Pipeline Results")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Printf("Fetched:      %d items\n", result.Stats.Fetched)
	fmt.Printf("Parsed:       %d items\n", result.Stats.Parsed)
	fmt.Printf("Filtered:     %d items removed\n", result.Stats.Filtered)
	fmt.Printf("Deduplicated: %d duplicates removed\n", result.Stats.Deduplicated)
	fmt.Printf("Stored:       %d items\n", result.Stats.Stored)
	fmt.Printf("Duration:     %dms\n", result.Stats.DurationMS)
	fmt.Println()

	if len(result.Errors) > 0 {
		fmt.Println("Errors:")
		for _, e := range result.Errors {
			fmt.Printf("  - [%s] %s: %s\n", e.Stage, e.Source, e.Message)
		}
		fmt.Println()
	}

	fmt.Println("Sample Items (first 5):")
	fmt.Println(strings.Repeat("-", 60))
	for i, item := range result.Items {
		if i >= 5 {
			break
		}
		fmt.Println()
		fmt.Printf("Title:     %s\n", utils.Truncate(item.Title, 70))
		fmt.Printf("Source:    %s\n", item.Source)
		fmt.Printf("Published: %s\n", item.PublishedAt)
		fmt.Printf("Topics:    %s\n", joinOrNone(item.Topics))
		fmt.Printf("Tickers:   %s\n", joinOrNone(item.Tickers))
		alertStr := "no"
		if item.Metadata.IsAlert {
			alertStr = fmt.Sprintf("YES (%s)", item.Metadata.AlertKeyword)
		}
		fmt.Printf("Alert:     %s\n", alertStr)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Output saved to: %s\n", storagePath)
	fmt.Println()

	printAlerts(result.Items)
	printTopicDistribution(result.Items)
	printSourceDistribution(result.Items)
}

func printAlerts(items []models.NewsItem) {
	var alerts []models.NewsItem
	for _, item := range items {
		if item.Metadata.IsAlert {
			alerts = append(alerts, item)
		}
	}
	if len(alerts) == 0 {
		return
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("ALERTS (%d items)\n", len(alerts))
	fmt.Println(strings.Repeat("=", 60))
	for i, alert := range alerts {
		if i >= 10 {
			fmt.Printf("... and %d more alerts\n", len(alerts)-10)
			break
		}
		kw := strings.ToUpper(alert.Metadata.AlertKeyword)
		if kw == "" {
			kw = "?"
		}
		fmt.Printf("[%s] %s\n", kw, utils.Truncate(alert.Title, 55))
	}
	fmt.Println()
}

func printTopicDistribution(items []models.NewsItem) {
	counts := map[string]int{}
	for _, item := range items {
		for _, topic := range item.Topics {
			counts[topic]++
		}
	}
	if len(counts) == 0 {
		return
	}

	fmt.Println("Topic Distribution:")
	for _, kv := range sortedByCount(counts) {
		bar := strings.Repeat("#", min(kv.count, 30))
		fmt.Printf("  %-12s %3d %s\n", kv.key, kv.count, bar)
	}
	fmt.Println()
}

func printSourceDistribution(items []models.NewsItem) {
	counts := map[string]int{}
	for _, item := range items {
		counts[item.Source]++
	}
	if len(counts) == 0 {
		return
	}

	fmt.Println("Source Distribution (top 10):")
	for i, kv := range sortedByCount(counts) {
		if i >= 10 {
			break
		}
		fmt.Printf("  %-25s %d\n", kv.key, kv.count)
	}
	fmt.Println()
}

type keyCount struct {
	key   string
	count int
}

// sortedByCount returns the map entries ordered by descending count, ties
// broken alphabetically for stable output.
func sortedByCount(counts map[string]int) []keyCount {
	kvs := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		kvs = append(kvs, keyCount{k, c})
	}
	sort.Slice(kvs, func(i, j int) bool {
		if kvs[i].count != kvs[j].count {
			return kvs[i].count > kvs[j].count
		}
		return kvs[i].key < kvs[j].key
	})
	return kvs
}

func joinOrNone(parts []string) string {
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
