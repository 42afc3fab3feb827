package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abstratium-dev/abstraccount/pkg/api"
	"github.com/abstratium-dev/abstraccount/pkg/ledger"
)

var (
	postStartDate string
	postEndDate   string
	postStatus    string
	postAccount   string
)

// postingsCmd lists postings grouped into transactions.
var postingsCmd = &cobra.Command{
	Use:   "postings",
	Short: "List postings grouped by transaction",
	Long: `List postings across all accounts, or of one account, grouped into
transaction records. Running balances are shown when the server provides
them.

Example:
  abstraccount postings --from 2025-01-01 --to 2025-01-31
  abstraccount postings --account "1020 Bank Account" --status CLEARED`,
	Run: runPostings,
}

func init() {
	postingsCmd.Flags().StringVar(&postStartDate, "from", "", "start date (YYYY-MM-DD)")
	postingsCmd.Flags().StringVar(&postEndDate, "to", "", "end date (YYYY-MM-DD)")
	postingsCmd.Flags().StringVar(&postStatus, "status", "", "transaction status (CLEARED, PENDING, UNCLEARED)")
	postingsCmd.Flags().StringVar(&postAccount, "account", "", "restrict to one account")
}

func runPostings(cmd *cobra.Command, args []string) {
	ctrl, cfg := newController()

	filter := api.PostingFilter{
		StartDate: postStartDate,
		EndDate:   postEndDate,
		Status:    postStatus,
	}
	if postAccount != "" {
		ctrl.LoadAccountPostings(postAccount, filter)
	} else {
		ctrl.LoadPostings(filter)
	}
	exitOnStoreError(ctrl.Store())

	postings := ctrl.Store().Postings()
	if len(postings) == 0 {
		fmt.Println("No postings")
		return
	}

	groups := ledger.GroupPostings(postings)
	for _, group := range groups {
		fmt.Printf("%s  %s\n", group.Date, group.Description)
		for _, posting := range group.Postings {
			line := fmt.Sprintf("    %-40s  %s %s", posting.AccountName, posting.Amount.StringFixed(2), posting.Commodity)
			if posting.RunningBalance != nil {
				line += fmt.Sprintf("  [%s]", posting.RunningBalance.StringFixed(2))
			}
			fmt.Println(line)
		}
	}
	fmt.Printf("\n%d postings in %d transactions\n", len(postings), len(groups))

	conn, cache := openCache(cfg)
	defer conn.Close()
	recordFetch(cache, "postings", "", len(postings))
}
