package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ScorerInterface rates how well a passage answers a question. Scores are
// only comparable within one reranking pass, not across passes.
type ScorerInterface interface {
	Score(ctx context.Context, question, passage string) (float64, error)
}

// CrossEncoder calls an external reranker service that runs a
// cross-encoder model over (query, document) pairs.
type CrossEncoder struct {
	url   string
	model string
}

type RerankRequest struct {
	Model    string `json:"model"`
	Query    string `json:"query"`
	Document string `json:"document"`
}

type RerankResponse struct {
	Score float64 `json:"score"`
}

func NewCrossEncoder() *CrossEncoder {
	return &CrossEncoder{
		url:   os.Getenv("RERANKER_URL"),
		model: os.Getenv("RERANKER_MODEL"),
	}
}

func (c *CrossEncoder) Score(ctx context.Context, question, passage string) (float64, error) {
	reqBody, err := json.Marshal(RerankRequest{
		Model:    c.model,
		Query:    question,
		Document: passage,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("reranker API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var rerankResp RerankResponse
	if err := json.Unmarshal(body, &rerankResp); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return rerankResp.Score, nil
}
