package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// uploadCmd uploads a journal file.
var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a journal file",
	Long: `Upload a plain-text journal file to the server. The journal list
is reloaded after a successful upload.

Example:
  abstraccount upload ./business-2025.journal`,
	Args: cobra.ExactArgs(1),
	Run:  runUpload,
}

func runUpload(cmd *cobra.Command, args []string) {
	ctrl, _ := newController()

	filePath := args[0]
	content, err := os.ReadFile(filePath)
	exitOnError(err, "failed to read journal file")

	slog.Info("uploading journal", "path", filePath, "bytes", len(content))

	err = ctrl.UploadJournal(string(content))
	exitOnError(err, "failed to upload journal")

	fmt.Printf("Uploaded %s (%d journals on server)\n", filePath, len(ctrl.Store().Journals()))
}
