package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question string
		answer   string
		want     string
	}{
		{
			name:     "plain answer untouched",
			question: "What is BOI?",
			answer:   "Beneficial Ownership Information.",
			want:     "Beneficial Ownership Information.",
		},
		{
			name:     "echoed question stripped",
			question: "What is BOI?",
			answer:   "What is BOI? It is a federal filing.",
			want:     "It is a federal filing.",
		},
		{
			name:     "history preamble dropped",
			question: "next question",
			answer:   "Based on the provided chat history, here is what I found.\n\nThe filing is due yearly.",
			want:     "The filing is due yearly.",
		},
		{
			name:     "preamble without blank line kept",
			question: "q",
			answer:   "Based on the provided chat history the answer is 42.",
			want:     "Based on the provided chat history the answer is 42.",
		},
		{
			name:     "trailing caveat cut",
			question: "q",
			answer:   "File the form online. Please note that specific requirements may vary by state.",
			want:     "File the form online.",
		},
		{
			name:     "whitespace trimmed",
			question: "q",
			answer:   "  padded  \n",
			want:     "padded",
		},
		{
			name:     "empty answer stays empty",
			question: "q",
			answer:   "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAnswer(tt.question, tt.answer))
		})
	}
}

func TestCleanAnswerIdempotent(t *testing.T) {
	question := "What is BOI?"
	answer := "What is BOI? It is a filing. Please note that specific requirements may vary."

	once := CleanAnswer(question, answer)
	twice := CleanAnswer(question, once)

	assert.Equal(t, once, twice)
}
