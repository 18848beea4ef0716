package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandParsesVariants(t *testing.T) {
	llm := &mockLLM{expansion: `["what is BOI", "explain BOI filing", "BOI procedure steps"]`}
	e := NewExpander(llm, 0)

	got := e.Expand(context.Background(), "What is the BOI filing procedure?", 3)

	assert.Equal(t, "What is the BOI filing procedure?", got.Original)
	assert.Equal(t, []string{"what is BOI", "explain BOI filing", "BOI procedure steps"}, got.Variants)
}

func TestExpandSalvagesArrayFromProse(t *testing.T) {
	llm := &mockLLM{expansion: "Sure! Here is a JSON array:\n[\"one\", \"two\"]\nHope that helps."}
	e := NewExpander(llm, 0)

	got := e.Expand(context.Background(), "BOI question", 2)

	assert.Equal(t, []string{"one", "two"}, got.Variants)
}

func TestExpandFallsBackOnMalformedOutput(t *testing.T) {
	tests := []struct {
		name      string
		expansion string
	}{
		{"no array at all", "I cannot do that."},
		{"broken json", `["unterminated`},
		{"array of objects", `[{"q": "one"}]`},
		{"only empty strings", `["", "   "]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mockLLM{expansion: tt.expansion}
			e := NewExpander(llm, 0)

			got := e.Expand(context.Background(), "original question", 5)

			require.Len(t, got.Variants, 1)
			assert.Equal(t, "original question", got.Variants[0])
		})
	}
}

func TestExpandFallsBackOnLLMError(t *testing.T) {
	llm := &mockLLM{err: errors.New("connection refused")}
	e := NewExpander(llm, 0)

	got := e.Expand(context.Background(), "original question", 5)

	assert.Equal(t, []string{"original question"}, got.Variants)
}

func TestExpandFiltersEmptyVariants(t *testing.T) {
	llm := &mockLLM{expansion: `["good one", "", "  ", "another"]`}
	e := NewExpander(llm, 0)

	got := e.Expand(context.Background(), "q", 4)

	assert.Equal(t, []string{"good one", "another"}, got.Variants)
}
