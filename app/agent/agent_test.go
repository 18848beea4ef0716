package agent

import (
	"context"
	"errors"
	"testing"

	"ragbot/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskDocumentGroundedQuestion(t *testing.T) {
	chunks := []types.Chunk{
		chunk(1, "boi background"),
		chunk(2, "filing steps"),
		chunk(3, "deadlines"),
	}
	llm := &mockLLM{
		expansion: `["how to file BOI", "BOI filing steps"]`,
		answer:    "You file it online.",
	}
	searcher := &mockSearcher{results: [][]types.Chunk{chunks}}
	scorer := &mockScorer{scores: map[string]float64{
		"boi background": -8.1,
		"filing steps":   -7.9,
		"deadlines":      -9.4,
	}}
	a := New(testConfig(), llm, &mockEmbedder{}, searcher, scorer)

	answer, history := a.Ask(context.Background(), "What is the BOI filing procedure?")

	assert.Equal(t, "You file it online.", answer)
	// Low scores still produce a context; synthesis runs exactly once.
	assert.Equal(t, 1, llm.synthesisCalls)
	assert.Equal(t, 1, llm.expandCalls)
	assert.NotZero(t, searcher.calls)
	require.Len(t, history, 2)
	assert.Equal(t, "User: What is the BOI filing procedure?", history[0])
	assert.Equal(t, "Bot: You file it online.", history[1])
}

func TestAskGeneralQuestionSkipsRetrieval(t *testing.T) {
	llm := &mockLLM{answer: "Doing great, thanks!"}
	searcher := &mockSearcher{}
	scorer := &mockScorer{}
	a := New(testConfig(), llm, &mockEmbedder{}, searcher, scorer)

	answer, history := a.Ask(context.Background(), "How are you?")

	assert.Equal(t, "Doing great, thanks!", answer)
	assert.Equal(t, 1, llm.synthesisCalls)
	assert.Zero(t, llm.expandCalls)
	assert.Zero(t, searcher.calls)
	assert.Zero(t, scorer.calls)
	require.Len(t, history, 2)
}

func TestAskGroundedWithEmptyRetrievalReturnsFallback(t *testing.T) {
	llm := &mockLLM{expansion: `["variant"]`}
	searcher := &mockSearcher{} // empty index
	scorer := &mockScorer{}
	a := New(testConfig(), llm, &mockEmbedder{}, searcher, scorer)

	answer, history := a.Ask(context.Background(), "What is the BOI filing procedure?")

	assert.Equal(t, FallbackAnswer, answer)
	assert.Zero(t, llm.synthesisCalls, "synthesis must be skipped without grounding")
	assert.Zero(t, scorer.calls)
	require.Len(t, history, 2)
	assert.Equal(t, "Bot: "+FallbackAnswer, history[1])
}

func TestAskLLMFailureIsRecordedInHistory(t *testing.T) {
	llm := &mockLLM{err: errors.New("model unreachable")}
	a := New(testConfig(), llm, &mockEmbedder{}, &mockSearcher{}, &mockScorer{})

	answer, history := a.Ask(context.Background(), "How are you?")

	assert.Equal(t, "Error: model unreachable", answer)
	require.Len(t, history, 2)
	assert.Equal(t, "User: How are you?", history[0])
	assert.Equal(t, "Bot: Error: model unreachable", history[1])
}

func TestAskGeneralEmptyAnswerGetsFallback(t *testing.T) {
	llm := &mockLLM{answer: "   "}
	a := New(testConfig(), llm, &mockEmbedder{}, &mockSearcher{}, &mockScorer{})

	answer, _ := a.Ask(context.Background(), "How are you?")

	assert.Equal(t, "I'm here and doing fine, thanks for asking!", answer)
}

func TestAskUsesHistoryAcrossTurns(t *testing.T) {
	llm := &mockLLM{answer: "answer"}
	a := New(testConfig(), llm, &mockEmbedder{}, &mockSearcher{}, &mockScorer{})

	a.Ask(context.Background(), "How are you?")
	_, history := a.Ask(context.Background(), "And now?")

	require.Len(t, history, 4)
	assert.Equal(t, "User: How are you?", history[0])
	assert.Equal(t, "User: And now?", history[2])
}
