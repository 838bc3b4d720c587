package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var (
	searchTopK int
	searchJSON bool
	searchText bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find the chunks most similar to a query",
	Long: `Runs similarity search and metadata enrichment without generating
an answer. Useful for inspecting what the ask command would see.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of results (default 5)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchText, "text", false, "print the full chunk text of each result")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	results, err := queryService.Retrieve(cmd.Context(), args[0], domain.QueryOptions{TopK: searchTopK})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, r := range results {
		printResult(cmd, i+1, r)
		if searchText {
			cmd.Printf("      %s\n", r.Text)
		}
		cmd.Println()
	}

	return nil
}
