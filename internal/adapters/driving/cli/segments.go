package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var segmentsJSON bool

var segmentsCmd = &cobra.Command{
	Use:   "segments [video-id]",
	Short: "Show the topic segments of an ingested video",
	Long: `Prints the LLM-derived topic segments for a video transcript, in
the order they occur in the video.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegments,
}

func init() {
	segmentsCmd.Flags().BoolVar(&segmentsJSON, "json", false, "output segments as JSON")
	rootCmd.AddCommand(segmentsCmd)
}

func runSegments(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	segments, err := queryService.Segments(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("segments failed: %w", err)
	}

	if segmentsJSON {
		data, err := json.MarshalIndent(segments, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal segments: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(segments) == 0 {
		cmd.Println("No segments found. Ingest the video transcript first.")
		return nil
	}

	for _, seg := range segments {
		cmd.Printf("%s - %s  %s\n",
			formatSeconds(seg.StartTime), formatSeconds(seg.EndTime), seg.Title)
	}

	return nil
}
