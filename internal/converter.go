package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"ragbot/types"
)

// Converter turns a source document into markdown text.
type Converter interface {
	ConvertToMarkdown(ctx context.Context, filePath string) (string, error)
}

// DoclingClient posts files to a docling-serve instance for conversion.
type DoclingClient struct {
	url string
}

func NewDoclingClient() *DoclingClient {
	return &DoclingClient{
		url: os.Getenv("DOCLING_URL"),
	}
}

func (c *DoclingClient) ConvertToMarkdown(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", filePath)
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(part, file); err != nil {
		return "", err
	}

	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("converter API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var d types.DoclingResponse
	if err = json.Unmarshal(body, &d); err != nil {
		return "", fmt.Errorf("failed to unmarshal converter response: %w", err)
	}

	return d.Document.MdContent, nil
}
