package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Ingest reports as they appear in a folder",
	Long: `Watch a folder and ingest every supported report written to it.
Each file is ingested once it has stopped changing for the settle delay,
under the period named by its file name. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("backfill", false, "ingest reports already in the folder first")
	watchCmd.Flags().Duration("settle", 0, "quiet period before a changed file is ingested (default 2s)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireService(ingestService, "ingest"); err != nil {
		return err
	}
	if newWatcher == nil {
		return fmt.Errorf("folder watcher %w", errNotConfigured)
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watching %s: not a directory: %w", dir, domain.ErrInvalidInput)
	}

	backfill, _ := cmd.Flags().GetBool("backfill")
	settle, _ := cmd.Flags().GetDuration("settle")
	if settle <= 0 {
		settle = settleDelay
	}

	w := newWatcher(dir)
	defer func() { _ = w.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", dir)

	fw := services.NewFolderWatcher(ingestService, settle)
	return fw.Run(commandContext(cmd), w, backfill, watchReporter(out))
}

func watchReporter(out io.Writer) services.WatchReport {
	return func(path string, result *domain.IngestResult, err error) {
		stamp := time.Now().Format(time.TimeOnly)
		if err != nil {
			fmt.Fprintf(out, "%s  failed  %s: %v\n", stamp, path, err)
			return
		}
		fmt.Fprintf(out, "%s  %s  %d records, %d passages added\n",
			stamp, result.Period, len(result.Records), result.PassagesAdded)
	}
}
