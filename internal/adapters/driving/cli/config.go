package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	Long: `View and change finrag configuration.

Common keys:
  embedding.provider    hashing, openai or ollama
  embedding.model       model name for the provider
  embedding.api_key     OpenAI API key (or set OPENAI_API_KEY)
  embedding.base_url    provider endpoint override
  vector.backend        flat or qdrant
  vector.qdrant.host    Qdrant host
  vector.qdrant.port    Qdrant gRPC port
  query.top_k           passages returned per semantic query
  chunker.min_length    shortest paragraph kept as a passage`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Numbers and booleans are stored typed.
Omit the value for an api_key to be prompted without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := requireService(configStore, "config"); err != nil {
		return err
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("config key %q: %w", args[0], domain.ErrNotFound)
	}
	fmt.Fprintln(cmd.OutOrStdout(), displayValue(args[0], value))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireService(configStore, "config"); err != nil {
		return err
	}

	key := args[0]
	var raw string
	switch {
	case len(args) == 2:
		raw = args[1]
	case isSecretKey(key):
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ", key)
		raw = readPassword(cmd.InOrStdin())
		fmt.Fprintln(cmd.OutOrStdout())
	default:
		return fmt.Errorf("config set %s: missing value: %w", key, domain.ErrInvalidInput)
	}

	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := requireService(configStore, "config"); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	keys := configStore.Keys()
	if len(keys) == 0 {
		fmt.Fprintf(out, "No configuration set (%s)\n", configStore.Path())
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		value, _ := configStore.Get(key)
		fmt.Fprintf(w, "%s\t%s\n", key, displayValue(key, value))
	}
	return w.Flush()
}

// parseConfigValue stores numbers and booleans typed so GetInt and GetBool see them.
func parseConfigValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func displayValue(key string, value any) string {
	s := fmt.Sprint(value)
	if isSecretKey(key) {
		return maskAPIKey(s)
	}
	return s
}
