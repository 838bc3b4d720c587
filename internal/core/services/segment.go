package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// maxSegmentationInput bounds the transcript text sent to the model, in
// runes, so the prompt fits a small local context window.
const maxSegmentationInput = 5000

const segmentationPrompt = `Analyze the following transcript:

%s

Divide it into logical sections or topics. For each section:
1. Provide a descriptive title for the section
2. Identify the start timestamp of the section

Format your response as a JSON array of objects with the following structure:
[
  {"title": "Introduction", "start_time": "00:00", "end_time": "02:15"},
  {"title": "Topic 1", "start_time": "02:16", "end_time": "05:30"}
]`

// jsonArrayPattern matches the first bracketed array in a model response,
// tolerating prose before and after it.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*?\]`)

// Segmenter derives coarse topic segments from a transcript by prompting an
// LLM and parsing the JSON array it returns.
type Segmenter struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// Ensure Segmenter accepts custom prompts.
var _ driven.PromptStoreAware = (*Segmenter)(nil)

// NewSegmenter creates a new transcript segmenter.
func NewSegmenter(llm driven.LLMService) *Segmenter {
	return &Segmenter{llm: llm}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *Segmenter) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// promptTemplate returns the segmentation prompt, customised or default.
func (s *Segmenter) promptTemplate() string {
	if s.prompts != nil {
		if tmpl, err := s.prompts.Load(driven.PromptSegmentation); err == nil && tmpl != "" {
			return tmpl
		}
	}
	return segmentationPrompt
}

// rawSegment is the shape the model is asked to emit.
type rawSegment struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Segment splits a transcript document into titled sections. The end time of
// the final section is forced to the end of the transcript, since models
// routinely guess it wrong.
func (s *Segmenter) Segment(ctx context.Context, doc *domain.Document) ([]domain.Segment, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("%w: no LLM service configured", domain.ErrGenerationService)
	}
	if doc == nil || !doc.IsTranscript() {
		return nil, fmt.Errorf("%w: segmentation requires a transcript document", domain.ErrInvalidInput)
	}

	text := fullTranscript(doc.Transcript)
	if runes := []rune(text); len(runes) > maxSegmentationInput {
		text = string(runes[:maxSegmentationInput]) + "..."
	}

	logger.Debug("Segmenting transcript %s (%d chars)", doc.ID, len(text))

	response, err := s.llm.Generate(ctx, fmt.Sprintf(s.promptTemplate(), text), driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("segmentation prompt: %w", err)
	}

	raw, err := extractSegments(response)
	if err != nil {
		return nil, err
	}

	segments := make([]domain.Segment, 0, len(raw))
	for _, r := range raw {
		if r.Title == "" {
			continue
		}
		start, err := parseTimestamp(r.StartTime)
		if err != nil {
			logger.Debug("Skipping segment %q: bad start time %q", r.Title, r.StartTime)
			continue
		}
		end, err := parseTimestamp(r.EndTime)
		if err != nil {
			logger.Debug("Segment %q: bad end time %q, using start", r.Title, r.EndTime)
			end = start
		}
		segments = append(segments, domain.Segment{
			VideoID:   doc.ID,
			Title:     r.Title,
			StartTime: start,
			EndTime:   end,
		})
	}

	// The model only sees a truncated transcript, so its final end time is
	// unreliable. Pin it to the real end of the video.
	if len(segments) > 0 {
		last := doc.Transcript[len(doc.Transcript)-1]
		segments[len(segments)-1].EndTime = last.End()
	}

	logger.Debug("Segmentation produced %d segments", len(segments))
	return segments, nil
}

// fullTranscript joins transcript entries into one space-separated string.
func fullTranscript(entries []domain.TranscriptEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Text != "" {
			parts = append(parts, e.Text)
		}
	}
	return strings.Join(parts, " ")
}

// extractSegments pulls the first JSON array out of a model response and
// decodes it.
func extractSegments(response string) ([]rawSegment, error) {
	match := jsonArrayPattern.FindString(response)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON array in segmentation response", domain.ErrGenerationService)
	}

	var raw []rawSegment
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode segmentation response: %v", domain.ErrGenerationService, err)
	}
	return raw, nil
}

// parseTimestamp converts "SS", "MM:SS" or "HH:MM:SS" to seconds.
func parseTimestamp(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	parts := strings.Split(ts, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	var seconds float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, fmt.Errorf("malformed timestamp %q", ts)
		}
		seconds = seconds*60 + v
	}
	return seconds, nil
}
