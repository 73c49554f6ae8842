package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/adapters/driven/config/file"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

var errNothingToUpdate = errors.New("nothing to update: pass --name, --pattern or --category")

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Manage the metric catalog",
	Long: `Manage the catalog of metric definitions used to extract records.

Each definition has a unique name, a regular expression whose first
capture group is the value, and a category. The unit of extracted
values is derived from the pattern itself.`,
}

var metricsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List metric definitions",
	Args:  cobra.NoArgs,
	RunE:  runMetricsList,
}

var metricsAddCmd = &cobra.Command{
	Use:   "add <name> <pattern>",
	Short: "Add a metric definition",
	Example: `  finrag metrics add "Gross Margin" 'Gross Margin\s*(\d+\.\d+)%' --category Financial`,
	Args:  cobra.ExactArgs(2),
	RunE:  runMetricsAdd,
}

var metricsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a metric definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricsEdit,
}

var metricsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a metric definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricsRemove,
}

var metricsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import definitions from a YAML or TOML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricsImport,
}

var metricsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export definitions to a YAML or TOML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetricsExport,
}

func init() {
	metricsAddCmd.Flags().String("category", domain.CategoryFinancial, "metric category")

	metricsEditCmd.Flags().String("name", "", "new name")
	metricsEditCmd.Flags().String("pattern", "", "new pattern")
	metricsEditCmd.Flags().String("category", "", "new category")

	metricsCmd.AddCommand(metricsListCmd, metricsAddCmd, metricsEditCmd,
		metricsRemoveCmd, metricsImportCmd, metricsExportCmd)
	rootCmd.AddCommand(metricsCmd)
}

func runMetricsList(cmd *cobra.Command, _ []string) error {
	if err := requireService(catalogService, "catalog"); err != nil {
		return err
	}

	defs, err := catalogService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing metrics: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(defs) == 0 {
		fmt.Fprintln(out, "No metric definitions.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tUNIT\tPATTERN")
	for _, d := range defs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Category, d.Unit(), d.Pattern)
	}
	return w.Flush()
}

func runMetricsAdd(cmd *cobra.Command, args []string) error {
	if err := requireService(catalogService, "catalog"); err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	def, err := catalogService.Add(commandContext(cmd), args[0], args[1], category)
	if err != nil {
		return fmt.Errorf("adding metric: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added metric %d: %s (%s)\n", def.ID, def.Name, def.Category)
	return nil
}

func runMetricsEdit(cmd *cobra.Command, args []string) error {
	if err := requireService(catalogService, "catalog"); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("pattern") && !flags.Changed("category") {
		return errNothingToUpdate
	}

	ctx := commandContext(cmd)
	current, err := catalogService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting metric %d: %w", id, err)
	}

	name, pattern, category := current.Name, current.Pattern, current.Category
	if flags.Changed("name") {
		name, _ = flags.GetString("name")
	}
	if flags.Changed("pattern") {
		pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("category") {
		category, _ = flags.GetString("category")
	}

	def, err := catalogService.Update(ctx, id, name, pattern, category)
	if err != nil {
		return fmt.Errorf("updating metric %d: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated metric %d: %s (%s)\n", def.ID, def.Name, def.Category)
	return nil
}

func runMetricsRemove(cmd *cobra.Command, args []string) error {
	if err := requireService(catalogService, "catalog"); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := catalogService.Remove(commandContext(cmd), id); err != nil {
		return fmt.Errorf("removing metric %d: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed metric %d\n", id)
	return nil
}

func runMetricsImport(cmd *cobra.Command, args []string) error {
	if err := requireService(catalogService, "catalog"); err != nil {
		return err
	}

	defs, err := file.LoadCatalog(args[0])
	if err != nil {
		return err
	}

	result, err := catalogService.Import(commandContext(cmd), defs)
	if err != nil {
		return fmt.Errorf("importing metrics: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d metrics", len(result.Added))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, ", skipped %d already in the catalog", len(result.Skipped))
	}
	fmt.Fprintln(out)
	return nil
}

func runMetricsExport(cmd *cobra.Command, args []string) error {
	if err := requireService(catalogService, "catalog"); err != nil {
		return err
	}

	defs, err := catalogService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing metrics: %w", err)
	}
	if err := file.WriteCatalog(args[0], defs); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d metrics to %s\n", len(defs), args[0])
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("metric id %q: %w", arg, domain.ErrInvalidInput)
	}
	return id, nil
}
