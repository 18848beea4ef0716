package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ragbot/model"
)

// ExpandedQuery carries the original question together with the paraphrased
// variants used for retrieval. Variants is never empty.
type ExpandedQuery struct {
	Original string
	Variants []string
}

const expandPromptFmt = `You are an AI assistant. Generate %d different versions of the given user question to retrieve relevant documents from a vector database. Provide these as a JSON array like ["question1", "question2", ...].
Original question: %s`

// Expander widens retrieval recall by asking the LLM to rephrase the
// question. It never fails: any LLM or parse problem degrades to a single
// variant equal to the original question.
type Expander struct {
	llm     model.LLMInterface
	timeout time.Duration
	logger  *slog.Logger
}

func NewExpander(llm model.LLMInterface, timeout time.Duration) *Expander {
	return &Expander{
		llm:     llm,
		timeout: timeout,
		logger:  slog.Default(),
	}
}

func (e *Expander) Expand(ctx context.Context, question string, fanout int) ExpandedQuery {
	fallback := ExpandedQuery{Original: question, Variants: []string{question}}
	if fanout <= 0 {
		return fallback
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.llm.Complete(ctx, fmt.Sprintf(expandPromptFmt, fanout, question))
	if err != nil {
		e.logger.Warn("[EXPAND] llm call failed, falling back to original question", "error", err)
		return fallback
	}

	variants, err := parseVariants(raw)
	if err != nil {
		e.logger.Warn("[EXPAND] unparseable expansion, falling back to original question", "error", err)
		return fallback
	}

	e.logger.Info("[EXPAND] question expanded", "variants", len(variants))
	return ExpandedQuery{Original: question, Variants: variants}
}

func parseVariants(raw string) ([]string, error) {
	arr, err := extractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var variants []string
	if err := json.Unmarshal([]byte(arr), &variants); err != nil {
		return nil, fmt.Errorf("invalid json array: %w", err)
	}

	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no usable variants in expansion")
	}
	return out, nil
}

// extractJSONArray salvages a JSON array from surrounding prose, since the
// model tends to wrap its output in explanations or markdown fences.
func extractJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")

	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no valid json array found")
	}

	return s[start : end+1], nil
}
