// Package cmd provides CLI commands for the abstraccount client.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abstratium-dev/abstraccount/pkg/api"
	"github.com/abstratium-dev/abstraccount/pkg/config"
	"github.com/abstratium-dev/abstraccount/pkg/controller"
	"github.com/abstratium-dev/abstraccount/pkg/db"
	"github.com/abstratium-dev/abstraccount/pkg/pathutil"
	"github.com/abstratium-dev/abstraccount/pkg/store"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "abstraccount",
	Short: "Browse an abstraccount ledger from the terminal",
	Long: `abstraccount is a CLI client for the abstraccount ledger API.

It supports:
- Listing journals, accounts, transactions and postings
- Filtering by date range, status, partner and account
- Rendering multi-commodity balances and account hierarchies
- Deleting journals and uploading ledger files
- Exporting grouped transactions as plain-text journal files
- Offline statistics from the local fetch cache

Example:
  abstraccount journals
  abstraccount postings --from 2025-01-01 --to 2025-01-31
  abstraccount balances --as-of 2025-06-30`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(journalsCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(postingsCmd)
	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	return cfgFile
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// exitOnStoreError surfaces a swallowed load error as a CLI failure.
func exitOnStoreError(st *store.Store) {
	if msg := st.Error(); msg != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		os.Exit(1)
	}
}

// newConfig loads the configuration without building a session. Used by
// offline commands.
func newConfig() (*config.Config, error) {
	return config.Load(getConfigFile())
}

// newController builds the session: config, API client, store, controller.
func newController() (*controller.Controller, *config.Config) {
	cfg, err := newConfig()
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate("api.baseUrl"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	client := api.NewClient(api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
	})

	return controller.New(client, store.New(), slog.Default()), cfg
}

// newResolver builds the data-root path resolver from configuration.
func newResolver(cfg *config.Config) *pathutil.PathResolver {
	return pathutil.New(pathutil.Config{
		DataRoot:    cfg.Local.DataRoot,
		CacheDBPath: cfg.Local.CacheDBPath,
		ExportDir:   cfg.Local.ExportDir,
	})
}

// openCache opens the local fetch cache database.
func openCache(cfg *config.Config) (*db.Connection, *db.FetchCache) {
	resolver := newResolver(cfg)
	dbPath := resolver.GetCacheDBPath()
	slog.Debug("opening fetch cache", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open fetch cache")

	return conn, db.NewFetchCache(conn)
}

// recordFetch writes a fetch-history row, logging instead of failing: the
// cache is bookkeeping, not part of the command's result.
func recordFetch(cache *db.FetchCache, resource, journalID string, count int) {
	if err := cache.RecordFetch(resource, journalID, count); err != nil {
		slog.Warn("failed to record fetch", "resource", resource, "error", err)
	}
}
