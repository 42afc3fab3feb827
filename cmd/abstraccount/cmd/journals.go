package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// journalsCmd lists all journals.
var journalsCmd = &cobra.Command{
	Use:   "journals",
	Short: "List journals",
	Long: `List all journals known to the server.

Example:
  abstraccount journals
  abstraccount journals show 0d1f
  abstraccount journals delete 0d1f`,
	Run: runJournals,
}

// journalsShowCmd prints one journal's metadata.
var journalsShowCmd = &cobra.Command{
	Use:   "show <journal-id>",
	Short: "Show journal metadata",
	Args:  cobra.ExactArgs(1),
	Run:   runJournalsShow,
}

// journalsDeleteCmd deletes a journal.
var journalsDeleteCmd = &cobra.Command{
	Use:   "delete <journal-id>",
	Short: "Delete a journal and everything it owns",
	Args:  cobra.ExactArgs(1),
	Run:   runJournalsDelete,
}

func init() {
	journalsCmd.AddCommand(journalsShowCmd)
	journalsCmd.AddCommand(journalsDeleteCmd)
}

func runJournals(cmd *cobra.Command, args []string) {
	ctrl, cfg := newController()

	ctrl.LoadJournals()
	exitOnStoreError(ctrl.Store())

	journals := ctrl.Store().Journals()
	if len(journals) == 0 {
		fmt.Println("No journals")
		return
	}

	for _, journal := range journals {
		subtitle := ""
		if journal.Subtitle != nil {
			subtitle = " - " + *journal.Subtitle
		}
		fmt.Printf("%s  %s%s (%s)\n", journal.ID, journal.Title, subtitle, journal.Currency)
	}

	conn, cache := openCache(cfg)
	defer conn.Close()
	recordFetch(cache, "journals", "", len(journals))
}

func runJournalsShow(cmd *cobra.Command, args []string) {
	ctrl, _ := newController()

	journal, err := ctrl.GetJournalMetadata(args[0])
	exitOnError(err, "failed to get journal metadata")

	fmt.Printf("Id:       %s\n", journal.ID)
	fmt.Printf("Title:    %s\n", journal.Title)
	if journal.Subtitle != nil {
		fmt.Printf("Subtitle: %s\n", *journal.Subtitle)
	}
	fmt.Printf("Currency: %s\n", journal.Currency)
	for code, precision := range journal.Commodities {
		fmt.Printf("Commodity: %s %s\n", code, precision)
	}
}

func runJournalsDelete(cmd *cobra.Command, args []string) {
	ctrl, _ := newController()

	journalID := args[0]
	slog.Info("deleting journal", "journal_id", journalID)

	err := ctrl.DeleteJournal(journalID)
	exitOnError(err, "failed to delete journal")

	fmt.Printf("Deleted journal %s (%d journals remain)\n", journalID, len(ctrl.Store().Journals()))
}
