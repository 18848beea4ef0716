package agent

import (
	"context"
	"errors"
	"testing"

	"ragbot/types"

	"github.com/stretchr/testify/assert"
)

func TestRetrieveDeduplicatesAcrossVariants(t *testing.T) {
	shared := chunk(1, "shared chunk")
	searcher := &mockSearcher{results: [][]types.Chunk{
		{shared, chunk(2, "only first")},
		{shared, chunk(3, "only second")},
	}}
	r := NewRetriever(&mockEmbedder{}, searcher)

	hits := r.Retrieve(context.Background(), ExpandedQuery{
		Original: "q",
		Variants: []string{"variant one", "variant two"},
	}, 15)

	assert.Len(t, hits, 3)
	seen := make(map[string]int)
	for _, h := range hits {
		seen[h.Chunk.ID.String()]++
	}
	assert.Equal(t, 1, seen[shared.ID.String()], "shared chunk must appear exactly once")
}

func TestRetrieveFirstOccurrenceWins(t *testing.T) {
	shared := chunk(1, "shared chunk")
	searcher := &mockSearcher{results: [][]types.Chunk{
		{shared},
		{shared},
	}}
	r := NewRetriever(&mockEmbedder{}, searcher)

	hits := r.Retrieve(context.Background(), ExpandedQuery{
		Original: "q",
		Variants: []string{"first", "second"},
	}, 15)

	assert.Len(t, hits, 1)
	assert.Equal(t, "first", hits[0].Variant)
}

func TestRetrieveEmptyIndex(t *testing.T) {
	r := NewRetriever(&mockEmbedder{}, &mockSearcher{})

	hits := r.Retrieve(context.Background(), ExpandedQuery{Original: "q", Variants: []string{"q"}}, 15)

	assert.Empty(t, hits)
}

func TestRetrieveSearchFailureYieldsEmpty(t *testing.T) {
	r := NewRetriever(&mockEmbedder{}, &mockSearcher{err: errors.New("index unavailable")})

	hits := r.Retrieve(context.Background(), ExpandedQuery{Original: "q", Variants: []string{"q"}}, 15)

	assert.Empty(t, hits)
}

func TestRetrieveEmbedFailureSkipsVariant(t *testing.T) {
	searcher := &mockSearcher{results: [][]types.Chunk{{chunk(1, "a")}}}
	r := NewRetriever(&mockEmbedder{err: errors.New("embedder down")}, searcher)

	hits := r.Retrieve(context.Background(), ExpandedQuery{Original: "q", Variants: []string{"q"}}, 15)

	assert.Empty(t, hits)
	assert.Zero(t, searcher.calls, "search must not run without an embedding")
}
