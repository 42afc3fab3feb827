package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abstratium-dev/abstraccount/pkg/ledger"
)

// accountsCmd lists declared accounts with their hierarchy paths.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts",
	Long: `List all declared accounts with type and derived hierarchy path.

Example:
  abstraccount accounts`,
	Run: runAccounts,
}

func runAccounts(cmd *cobra.Command, args []string) {
	ctrl, cfg := newController()

	ctrl.LoadAccounts()
	exitOnStoreError(ctrl.Store())

	accounts := ctrl.Store().Accounts()
	if len(accounts) == 0 {
		fmt.Println("No accounts")
		return
	}

	for _, account := range accounts {
		note := ""
		if account.Note != nil && *account.Note != "" {
			note = "  ; " + *account.Note
		}
		fmt.Printf("%-24s  %-40s  %s%s\n",
			ledger.HierarchyPath(account.AccountNumber),
			account.AccountName,
			account.AccountType,
			note)
	}

	conn, cache := openCache(cfg)
	defer conn.Close()
	recordFetch(cache, "accounts", "", len(accounts))
}
