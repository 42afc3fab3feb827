package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abstratium-dev/abstraccount/pkg/api"
	"github.com/abstratium-dev/abstraccount/pkg/ledger"
)

var (
	balAsOfDate string
	balAccount  string
	balCached   bool
)

// balancesCmd shows account balances with hierarchy paths.
var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show account balances",
	Long: `Show the per-commodity balances of all accounts, or of one
account, each with its derived hierarchy path. Fetched balances are cached
locally; --cached reads the cache instead of the server.

Example:
  abstraccount balances
  abstraccount balances --as-of 2025-06-30
  abstraccount balances --account "1020 Bank Account"
  abstraccount balances --cached`,
	Run: runBalances,
}

func init() {
	balancesCmd.Flags().StringVar(&balAsOfDate, "as-of", "", "balance date (YYYY-MM-DD)")
	balancesCmd.Flags().StringVar(&balAccount, "account", "", "show a single account")
	balancesCmd.Flags().BoolVar(&balCached, "cached", false, "read the local cache instead of the server")
}

func runBalances(cmd *cobra.Command, args []string) {
	ctrl, cfg := newController()

	if balAccount != "" {
		balance, err := ctrl.GetAccountBalance(balAccount, balAsOfDate)
		exitOnError(err, "failed to get account balance")
		printBalance(*balance)
		return
	}

	conn, cache := openCache(cfg)
	defer conn.Close()

	var balances []api.AccountBalance
	if balCached {
		var err error
		balances, err = cache.CachedBalances()
		exitOnError(err, "failed to read cached balances")
	} else {
		ctrl.LoadBalances(balAsOfDate)
		exitOnStoreError(ctrl.Store())
		balances = ctrl.Store().Balances()

		recordFetch(cache, "balances", "", len(balances))
		if err := cache.CacheBalances(balances, balAsOfDate); err != nil {
			slog.Warn("failed to cache balances", "error", err)
		}
	}

	if len(balances) == 0 {
		fmt.Println("No balances")
		return
	}
	for _, balance := range balances {
		printBalance(balance)
	}
}

func printBalance(balance api.AccountBalance) {
	fmt.Printf("%-24s  %-40s  %s\n",
		ledger.HierarchyPath(balance.AccountNumber),
		balance.AccountName,
		ledger.FormatBalances(balance.Balances))
}
