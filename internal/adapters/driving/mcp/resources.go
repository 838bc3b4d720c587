package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for recall resources.
const uriScheme = "recall://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for video topic segments.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "videos/{videoId}/segments",
		Name:        "video-segments",
		Description: "Topic segments of an ingested video transcript",
		MIMEType:    "application/json",
	}, s.handleSegmentsResource)
}

// handleSegmentsResource returns the stored segments for a video.
func (s *Server) handleSegmentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	videoID, err := parseSegmentsURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	segments, err := s.ports.Query.Segments(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("getting segments for %s: %w", videoID, err)
	}

	type segmentInfo struct {
		Title     string  `json:"title"`
		StartTime float64 `json:"start_time"`
		EndTime   float64 `json:"end_time"`
	}

	infos := make([]segmentInfo, len(segments))
	for i, seg := range segments {
		infos[i] = segmentInfo{
			Title:     seg.Title,
			StartTime: seg.StartTime,
			EndTime:   seg.EndTime,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling segments: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// parseSegmentsURI extracts the video id from a segments resource URI.
func parseSegmentsURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, uriScheme+"videos/")
	if !ok {
		return "", fmt.Errorf("unsupported resource URI: %s", uri)
	}
	videoID, ok := strings.CutSuffix(rest, "/segments")
	if !ok || videoID == "" {
		return "", fmt.Errorf("unsupported resource URI: %s", uri)
	}
	return videoID, nil
}
