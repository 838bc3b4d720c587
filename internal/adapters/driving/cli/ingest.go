package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]...",
	Short: "Ingest documents into the knowledge base",
	Long: `Loads, chunks, embeds and stores the given files. A directory
argument ingests every supported file directly inside it.

Supported inputs:
  .pdf          extracted with pdftotext, one page at a time
  .txt, .md     plain text
  .json         video transcripts ({"video_id": ..., "entries": [...]})

Re-running ingest on the same file is cheap: chunks that are already
stored are skipped without calling the embedding model.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no supported files found")
	}

	reports, err := ingestService.IngestBatch(cmd.Context(), paths)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	failures := 0
	for _, report := range reports {
		if report.Complete() {
			cmd.Printf("%s: %d added, %d skipped", report.DocumentID, report.Added, report.Skipped)
			if report.Segments > 0 {
				cmd.Printf(", %d segments", report.Segments)
			}
			cmd.Println()
			continue
		}

		failures++
		cmd.Printf("%s: %d added, %d skipped, %d failed\n",
			report.DocumentID, report.Added, report.Skipped, report.Failed)
		for _, e := range report.Errors {
			cmd.Printf("  %v\n", e)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d documents had failures", failures, len(reports))
	}
	return nil
}

// expandPaths replaces each directory argument with the supported files
// directly inside it. Non-directory arguments pass through unchanged, so a
// missing file is still reported per document by the batch.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !supportedFile(entry.Name()) {
				continue
			}
			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}
	return paths, nil
}
