package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var (
	askTopK    int
	askJSON    bool
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested documents",
	Long: `Retrieves the chunks most similar to the question, assembles them
into a context window and asks the LLM to answer from that context only.

When nothing relevant is stored, recall says so instead of guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default 5)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "show the retrieved chunks under the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer, err := queryService.Ask(cmd.Context(), args[0], domain.QueryOptions{TopK: askTopK})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)

	if askSources && len(answer.Results) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, r := range answer.Results {
			printResult(cmd, i+1, r)
		}
	}

	return nil
}

// printResult renders one retrieval hit as an indented block.
func printResult(cmd *cobra.Command, n int, r domain.RetrievalResult) {
	title := r.Metadata.Title
	if title == "" {
		title = r.Metadata.VideoID
	}
	cmd.Printf("  [%d] %s (%.3f)\n", n, title, r.Distance)
	if r.Metadata.URL != "" {
		cmd.Printf("      %s\n", r.Metadata.URL)
	}
	if r.Metadata.EndTime > 0 {
		cmd.Printf("      %s - %s\n",
			formatSeconds(r.Metadata.StartTime), formatSeconds(r.Metadata.EndTime))
	}
}

// formatSeconds renders seconds as H:MM:SS, or M:SS under an hour.
func formatSeconds(s float64) string {
	total := int(s)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
