package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abstratium-dev/abstraccount/pkg/api"
)

var (
	txStartDate string
	txEndDate   string
	txPartnerID string
	txStatus    string
)

// transactionsCmd lists the transactions of a journal.
var transactionsCmd = &cobra.Command{
	Use:   "transactions <journal-id>",
	Short: "List transactions of a journal",
	Long: `List the transactions of a journal, optionally filtered by date
range, partner and status.

Example:
  abstraccount transactions 0d1f
  abstraccount transactions 0d1f --from 2025-01-01 --to 2025-03-31 --status CLEARED`,
	Args: cobra.ExactArgs(1),
	Run:  runTransactions,
}

func init() {
	transactionsCmd.Flags().StringVar(&txStartDate, "from", "", "start date (YYYY-MM-DD)")
	transactionsCmd.Flags().StringVar(&txEndDate, "to", "", "end date (YYYY-MM-DD)")
	transactionsCmd.Flags().StringVar(&txPartnerID, "partner", "", "partner id")
	transactionsCmd.Flags().StringVar(&txStatus, "status", "", "transaction status (CLEARED, PENDING, UNCLEARED)")
}

func runTransactions(cmd *cobra.Command, args []string) {
	ctrl, cfg := newController()

	journalID := args[0]
	ctrl.LoadTransactions(journalID, api.TransactionFilter{
		StartDate: txStartDate,
		EndDate:   txEndDate,
		PartnerID: txPartnerID,
		Status:    txStatus,
	})
	exitOnStoreError(ctrl.Store())

	transactions := ctrl.Store().Transactions()
	if len(transactions) == 0 {
		fmt.Println("No transactions")
		return
	}

	for _, txn := range transactions {
		fmt.Printf("%s  %-9s  %s\n", txn.Date, txn.Status, txn.Description)
		for _, entry := range txn.Entries {
			fmt.Printf("    %-40s  %s %s\n", entry.AccountName, entry.Amount.StringFixed(2), entry.Commodity)
		}
	}

	conn, cache := openCache(cfg)
	defer conn.Close()
	recordFetch(cache, "transactions", journalID, len(transactions))
}
