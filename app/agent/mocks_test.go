package agent

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ragbot/types"

	"github.com/google/uuid"
)

// mockLLM answers expansion prompts with a canned variant list and synthesis
// prompts with a canned answer, counting both separately.
type mockLLM struct {
	mu             sync.Mutex
	expansion      string
	answer         string
	err            error
	expandCalls    int
	synthesisCalls int
}

func (m *mockLLM) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if strings.Contains(prompt, "JSON array") {
		m.expandCalls++
		return m.expansion, nil
	}
	m.synthesisCalls++
	return m.answer, nil
}

type mockEmbedder struct {
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	// Deterministic tiny vector derived from the text length.
	return []float32{float32(len(text)), 1, 0}, nil
}

type mockSearcher struct {
	mu      sync.Mutex
	results [][]types.Chunk // one result set per call, last one repeats
	err     error
	calls   int
}

func (m *mockSearcher) Search(_ context.Context, _ []float32, _ int) ([]types.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) == 0 {
		return nil, nil
	}
	idx := m.calls - 1
	if idx >= len(m.results) {
		idx = len(m.results) - 1
	}
	return m.results[idx], nil
}

type mockScorer struct {
	mu     sync.Mutex
	scores map[string]float64 // passage -> score
	err    error
	calls  int
}

func (m *mockScorer) Score(_ context.Context, _, passage string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	score, ok := m.scores[passage]
	if !ok {
		return 0, errors.New("unexpected passage")
	}
	return score, nil
}

func chunk(id byte, content string) types.Chunk {
	return types.Chunk{
		ID:      uuid.UUID{id},
		DocID:   uuid.UUID{0xaa},
		Content: content,
	}
}

func testConfig() types.Config {
	return types.Config{
		DocKeywords:     []string{"BOI", "report", "information", "procedure", "file"},
		Fanout:          5,
		KPerQuery:       15,
		TopK:            3,
		HistoryCap:      10,
		MaxContextChars: 20000,
	}
}
