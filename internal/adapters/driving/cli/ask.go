package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about ingested reports",
	Long: `Answer a natural-language question about the ingested reports.

Questions naming a known intent ("net profit trend", "revenue trend",
"how has the margin evolved", "ebitda margin decrease", "expense
breakdown", "international revenue") are answered from the extracted
records, with the most relevant report paragraphs attached. Anything
else is answered with the report passages most similar to the question.

Examples:
  finrag ask "what is the net profit trend"
  finrag ask why did the ebitda margin decrease --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("json", false, "print the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

type answerOutput struct {
	Query     string   `json:"query"`
	Intent    string   `json:"intent,omitempty"`
	Kind      string   `json:"kind"`
	Text      string   `json:"text"`
	FollowUps []string `json:"follow_ups,omitempty"`
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	sourceStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6B7280"))
)

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireService(queryService, "query"); err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question: %w", domain.ErrInvalidInput)
	}

	answer, err := queryService.Ask(commandContext(cmd), question)
	if err != nil {
		return fmt.Errorf("answering: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(answerOutput{
			Query:     answer.Query,
			Intent:    answer.Intent,
			Kind:      string(answer.Kind),
			Text:      answer.Text,
			FollowUps: answer.FollowUps,
		})
	}

	printAnswer(out, answer.Text, isTerminal(out))
	return nil
}

// printAnswer writes the answer text, styling headings and source lines on a terminal.
func printAnswer(out io.Writer, text string, styled bool) {
	for _, line := range strings.Split(text, "\n") {
		if styled {
			switch {
			case strings.HasPrefix(line, "#"):
				line = headingStyle.Render(strings.TrimLeft(line, "# "))
			case strings.HasPrefix(line, "**Source**"), strings.HasPrefix(line, "**From "):
				line = sourceStyle.Render(strings.ReplaceAll(line, "**", ""))
			}
		}
		fmt.Fprintln(out, line)
	}
}
