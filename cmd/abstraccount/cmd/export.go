package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abstratium-dev/abstraccount/pkg/api"
	"github.com/abstratium-dev/abstraccount/pkg/export"
	"github.com/abstratium-dev/abstraccount/pkg/ledger"
)

var (
	expStartDate string
	expEndDate   string
	expStatus    string
	expOut       string
)

// exportCmd writes a journal's postings back out as journal text.
var exportCmd = &cobra.Command{
	Use:   "export <journal-id>",
	Short: "Export a journal as plain text",
	Long: `Fetch a journal's metadata and postings and render them as a
plain-text journal file. Without --out the file is written under the export
directory, named after the journal title.

Example:
  abstraccount export 0d1f
  abstraccount export 0d1f --from 2025-01-01 --to 2025-12-31 --out ./2025.journal`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&expStartDate, "from", "", "start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&expEndDate, "to", "", "end date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&expStatus, "status", "", "transaction status (CLEARED, PENDING, UNCLEARED)")
	exportCmd.Flags().StringVar(&expOut, "out", "", "output file (default: export dir + journal title)")
}

func runExport(cmd *cobra.Command, args []string) {
	ctrl, cfg := newController()

	journalID := args[0]
	journal, err := ctrl.GetJournalMetadata(journalID)
	exitOnError(err, "failed to get journal metadata")

	ctrl.LoadPostings(api.PostingFilter{
		StartDate: expStartDate,
		EndDate:   expEndDate,
		Status:    expStatus,
	})
	exitOnStoreError(ctrl.Store())
	postings := ctrl.Store().Postings()

	style := export.DefaultStyle()
	if cfg.Local.DisplayStyle != "" {
		style, err = export.LoadStyle(cfg.Local.DisplayStyle)
		exitOnError(err, "failed to load display style")
	}

	groups := ledger.GroupPostings(postings)
	content := export.NewSerializer(style).Serialize(*journal, groups)

	resolver := newResolver(cfg)
	outPath := expOut
	if outPath == "" {
		outPath, err = resolver.GetExportFilePath(journal.Title)
		exitOnError(err, "failed to resolve export path")
	}
	err = resolver.EnsureParentDir(outPath)
	exitOnError(err, "failed to create export directory")

	err = os.WriteFile(outPath, []byte(content), 0644)
	exitOnError(err, "failed to write export file")

	slog.Info("exported journal", "journal_id", journalID, "path", outPath,
		"transactions", len(groups), "postings", len(postings))
	fmt.Printf("Exported %d transactions to %s\n", len(groups), outPath)

	conn, cache := openCache(cfg)
	defer conn.Close()
	recordFetch(cache, "postings", journalID, len(postings))
}
