package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

var errEmbedUnavailable = errors.New("embedding backend unavailable")

// --- Mock implementations shared by the service tests ---

// mockEmbedder implements driven.EmbeddingService and counts its calls.
// Vectors are deterministic per text so equal texts stay close together.
type mockEmbedder struct {
	mu     sync.Mutex
	calls  int
	texts  []string
	failOn string // texts containing this substring fail
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	if m.failOn != "" && strings.Contains(text, m.failOn) {
		return nil, errEmbedUnavailable
	}
	v := make([]float32, 8)
	for i, r := range text {
		v[i%8] += float32(r % 31)
	}
	return v, nil
}

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockLLM implements driven.LLMService with a canned response and records
// every prompt it sees.
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }

func (m *mockLLM) Ping(_ context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }

func (m *mockLLM) promptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockLLM) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
