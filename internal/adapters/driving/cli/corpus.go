package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and manage the passage corpus",
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runCorpusStats,
}

var corpusResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every passage from the corpus",
	Long: `Remove every passage and its embedding from the corpus.
Extracted records are kept; re-ingest reports to rebuild the corpus.`,
	Args: cobra.NoArgs,
	RunE: runCorpusReset,
}

func init() {
	corpusResetCmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	corpusCmd.AddCommand(corpusStatsCmd, corpusResetCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusStats(cmd *cobra.Command, _ []string) error {
	if err := requireService(corpusService, "corpus"); err != nil {
		return err
	}

	stats := corpusService.Stats(commandContext(cmd))
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Passages:   %d\n", stats.Passages)
	if len(stats.Periods) > 0 {
		fmt.Fprintf(out, "Periods:    %s\n", strings.Join(stats.Periods, ", "))
	} else {
		fmt.Fprintln(out, "Periods:    none")
	}
	if stats.Model != "" {
		fmt.Fprintf(out, "Embeddings: %s (%d dimensions)\n", stats.Model, stats.Dimensions)
	} else {
		fmt.Fprintln(out, "Embeddings: not configured")
	}
	return nil
}

func runCorpusReset(cmd *cobra.Command, _ []string) error {
	if err := requireService(corpusService, "corpus"); err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	out := cmd.OutOrStdout()
	if !yes && !confirm(bufio.NewReader(cmd.InOrStdin()), out, "Remove every passage from the corpus?") {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	if err := corpusService.Reset(commandContext(cmd)); err != nil {
		return fmt.Errorf("resetting corpus: %w", err)
	}
	fmt.Fprintln(out, "Corpus reset.")
	return nil
}
