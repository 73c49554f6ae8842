package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List extracted metric records",
	Long: `List the metric records extracted from ingested reports,
optionally restricted to one reporting period.`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List reporting periods with records",
	Args:  cobra.NoArgs,
	RunE:  runPeriods,
}

func init() {
	recordsCmd.Flags().String("period", "", "only show records for this period")
	recordsCmd.Flags().Bool("json", false, "print records as JSON")
	recordsCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(recordsCmd)
}

type recordOutput struct {
	Period     string  `json:"period"`
	Metric     string  `json:"metric"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Year       int     `json:"year"`
	SourcePage int     `json:"source_page"`
	Category   string  `json:"category"`
}

func newRecordOutput(r domain.ExtractedMetricRecord) recordOutput {
	return recordOutput{
		Period:     r.Period,
		Metric:     r.MetricName,
		Value:      r.Value,
		Unit:       r.Unit,
		Year:       r.Year,
		SourcePage: r.SourcePage,
		Category:   r.Category,
	}
}

func runRecords(cmd *cobra.Command, _ []string) error {
	if err := requireService(recordService, "record"); err != nil {
		return err
	}

	period, _ := cmd.Flags().GetString("period")
	asJSON, _ := cmd.Flags().GetBool("json")

	records, err := recordService.List(commandContext(cmd), period)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		outputs := make([]recordOutput, 0, len(records))
		for _, r := range records {
			outputs = append(outputs, newRecordOutput(r))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outputs)
	}

	if len(records) == 0 {
		if period != "" {
			fmt.Fprintf(out, "No records for %s.\n", period)
		} else {
			fmt.Fprintln(out, "No records. Ingest a report first.")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tMETRIC\tVALUE\tUNIT\tCATEGORY\tPAGE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			r.Period, r.MetricName, domain.FormatValue(r.Value), r.Unit, r.Category, r.SourcePage)
	}
	return w.Flush()
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	if err := requireService(recordService, "record"); err != nil {
		return err
	}

	periods, err := recordService.Periods(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing periods: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(periods) == 0 {
		fmt.Fprintln(out, "No periods ingested.")
		return nil
	}
	for _, p := range periods {
		fmt.Fprintln(out, p)
	}
	return nil
}
