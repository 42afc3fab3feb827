package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display fetch cache statistics",
	Long: `Display statistics about the local fetch cache.

Shows:
- Total number of recorded fetches, per resource
- Number of accounts with cached balances
- Last fetch timestamp

Works offline; nothing is fetched from the server.

Example:
  abstraccount stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	cfg, err := newConfig()
	exitOnError(err, "failed to load configuration")

	conn, cache := openCache(cfg)
	defer conn.Close()

	stats, err := cache.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Fetch Cache Statistics ===")
	fmt.Printf("Total fetches:     %d\n", stats.TotalFetches)

	resources := make([]string, 0, len(stats.ByResource))
	for resource := range stats.ByResource {
		resources = append(resources, resource)
	}
	sort.Strings(resources)
	for _, resource := range resources {
		fmt.Printf("  %-16s %d\n", resource+":", stats.ByResource[resource])
	}

	fmt.Printf("Cached accounts:   %d\n", stats.CachedAccounts)
	if stats.LastFetch.Valid {
		fmt.Printf("Last fetch:        %s\n", stats.LastFetch.String)
	} else {
		fmt.Printf("Last fetch:        (never)\n")
	}
	fmt.Println()
}
