package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// LLMInterface is the single boundary to the generation model. The prompt is
// fully assembled by the caller; the implementation only moves text.
type LLMInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OllamaLLM calls the Ollama /api/generate endpoint.
type OllamaLLM struct {
	url    string
	model  string
	logger *slog.Logger
}

type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

func NewOllamaLLM() *OllamaLLM {
	return &OllamaLLM{
		url:    os.Getenv("LLM_URL"),
		model:  os.Getenv("LLM_MODEL"),
		logger: slog.Default(),
	}
}

func (l *OllamaLLM) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	defer func() {
		l.logger.Info("[LLM] answer received", "took", time.Since(start))
	}()

	reqBody, err := json.Marshal(GenerateRequest{
		Model:  l.model,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", l.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err == nil && genResp.Response != "" {
		return genResp.Response, nil
	}

	// Streamed answer: collect the chunks into one string.
	type streamChunk struct {
		Response string `json:"response"`
	}
	var output string
	decoder := json.NewDecoder(bytes.NewReader(body))
	for decoder.More() {
		var chunk streamChunk
		if err := decoder.Decode(&chunk); err != nil {
			return "", fmt.Errorf("failed to decode stream chunk: %w", err)
		}
		output += chunk.Response
	}
	return output, nil
}
