package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContextJoinsInRankOrder(t *testing.T) {
	ranked := []RankedHit{
		{Chunk: chunk(1, "first passage"), Score: 3},
		{Chunk: chunk(2, "second passage"), Score: 2},
		{Chunk: chunk(3, "third passage"), Score: 1},
	}

	got := BuildContext(ranked, 20000)

	assert.Equal(t, "first passage second passage third passage", got)
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil, 20000))
}

func TestBuildContextBudgetCutsLowestRanked(t *testing.T) {
	ranked := []RankedHit{
		{Chunk: chunk(1, strings.Repeat("a", 50)), Score: 3},
		{Chunk: chunk(2, strings.Repeat("b", 50)), Score: 2},
		{Chunk: chunk(3, strings.Repeat("c", 50)), Score: 1},
	}

	got := BuildContext(ranked, 60)

	// The chunk crossing the limit is kept, everything after is cut.
	assert.Contains(t, got, "a")
	assert.Contains(t, got, "b")
	assert.NotContains(t, got, "c")
}

func TestBuildContextUnboundedWhenBudgetDisabled(t *testing.T) {
	ranked := []RankedHit{
		{Chunk: chunk(1, strings.Repeat("a", 100))},
		{Chunk: chunk(2, strings.Repeat("b", 100))},
	}

	got := BuildContext(ranked, 0)

	assert.Len(t, got, 201)
}
