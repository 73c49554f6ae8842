package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext/pdf"
)

var errPeriodWithManyFiles = errors.New("--period can only be used with a single file")

// checkPDFTool reports whether pdftotext is installed.
var checkPDFTool = pdf.CheckAvailable

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Ingest financial reports",
	Long: `Read one or more reports, extract the catalogued metrics for the
report's period and add the report paragraphs to the search corpus.

The period defaults to the file name without extension, so
Q1FY24.pdf is filed under Q1FY24. Re-ingesting a period replaces
its records; passages are always appended.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("period", "", "reporting period label (single file only)")
	ingestCmd.Flags().Bool("json", false, "print results as JSON")
	rootCmd.AddCommand(ingestCmd)
}

type ingestOutput struct {
	Path          string          `json:"path"`
	Period        string          `json:"period"`
	Pages         int             `json:"pages"`
	Records       []recordOutput  `json:"records"`
	Skipped       []skippedOutput `json:"skipped,omitempty"`
	PassagesAdded int             `json:"passages_added"`
	CorpusSize    int             `json:"corpus_size"`
}

type skippedOutput struct {
	Metric string `json:"metric"`
	Reason string `json:"reason"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := requireService(ingestService, "ingest"); err != nil {
		return err
	}

	period, _ := cmd.Flags().GetString("period")
	asJSON, _ := cmd.Flags().GetBool("json")
	if period != "" && len(args) > 1 {
		return errPeriodWithManyFiles
	}

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if hasPDF(args) && checkPDFTool() != nil {
		cmd.PrintErrln(pdf.InstallInstructions())
		cmd.PrintErrln()
	}

	var results []ingestOutput
	var failed int
	for _, path := range args {
		result, err := ingestService.Ingest(ctx, path, period)
		if err != nil {
			failed++
			cmd.PrintErrf("Error: %s: %v\n", path, err)
			continue
		}
		if asJSON {
			results = append(results, ingestResultOutput(result))
			continue
		}
		printIngestResult(out, result)
	}

	if asJSON {
		if results == nil {
			results = []ingestOutput{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed to ingest", failed, len(args))
	}
	return nil
}

func printIngestResult(out io.Writer, r *domain.IngestResult) {
	fmt.Fprintf(out, "Ingested %s as %s (%d pages)\n", r.Path, r.Period, r.Pages)
	fmt.Fprintf(out, "  Records:  %d\n", len(r.Records))
	fmt.Fprintf(out, "  Passages: %d added, %d in corpus\n", r.PassagesAdded, r.CorpusSize)
	for _, s := range r.Skipped {
		fmt.Fprintf(out, "  Skipped %s: %s\n", s.MetricName, s.Reason)
	}
}

func ingestResultOutput(r *domain.IngestResult) ingestOutput {
	o := ingestOutput{
		Path:          r.Path,
		Period:        r.Period,
		Pages:         r.Pages,
		Records:       make([]recordOutput, 0, len(r.Records)),
		PassagesAdded: r.PassagesAdded,
		CorpusSize:    r.CorpusSize,
	}
	for _, rec := range r.Records {
		o.Records = append(o.Records, newRecordOutput(rec))
	}
	for _, s := range r.Skipped {
		o.Skipped = append(o.Skipped, skippedOutput{Metric: s.MetricName, Reason: s.Reason})
	}
	return o
}

func hasPDF(paths []string) bool {
	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), ".pdf") {
			return true
		}
	}
	return false
}
