// Package internal implements the mechanical part of ingestion: PDF
// preprocessing, markdown conversion, word-window chunking and embedding.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ragbot/model"
	"ragbot/types"

	"github.com/google/uuid"
)

type PDFLoader struct {
	cfg       types.Config
	embedder  model.EmbedderInterface
	converter Converter
	logger    *slog.Logger
}

func NewPDFLoader(cfg types.Config, embedder model.EmbedderInterface, converter Converter) *PDFLoader {
	if err := createDirectories(cfg.SourceDir, cfg.ArchiveDir, cfg.BadDir); err != nil {
		slog.Default().Warn("[LOADER] failed to create work directories", "error", err)
	}
	return &PDFLoader{
		cfg:       cfg,
		embedder:  embedder,
		converter: converter,
		logger:    slog.Default(),
	}
}

// FetchFile turns one PDF into a document with embedded chunks. Nothing is
// written to the store here; the caller decides what to do with the result.
func (l *PDFLoader) FetchFile(ctx context.Context, filePath string) (*types.Document, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	prepared, cleanup, err := l.preparePDF(filePath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	md, err := l.converter.ConvertToMarkdown(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", filePath, err)
	}

	docID := generateDocumentID(filePath)
	chunks, err := l.embedChunks(ctx, md, docID)
	if err != nil {
		return nil, err
	}
	l.logger.Info("[LOADER] document split", "file", filepath.Base(filePath), "chunks", len(chunks))

	return &types.Document{
		ID:         docID,
		Title:      generateTitle(filePath),
		Chunks:     chunks,
		Source:     "pdf",
		SourcePath: filePath,
		CreatedAt:  time.Now(),
		UpdatedAt:  info.ModTime(),
		Version:    1,
	}, nil
}

// preparePDF validates the file and, when crop margins are configured, cuts
// headers and footers into a temp copy. cleanup removes that copy.
func (l *PDFLoader) preparePDF(filePath string) (string, func(), error) {
	noop := func() {}

	if err := ValidatePDF(filePath); err != nil {
		return "", noop, err
	}

	if l.cfg.CropTop == 0 && l.cfg.CropBottom == 0 {
		return filePath, noop, nil
	}

	cropped := filepath.Join(os.TempDir(), "cropped_"+filepath.Base(filePath))
	if err := RemoveHeaderFooterCrop(filePath, cropped, l.cfg.CropTop, l.cfg.CropBottom); err != nil {
		return "", noop, err
	}
	return cropped, func() { os.Remove(cropped) }, nil
}

func (l *PDFLoader) embedChunks(ctx context.Context, text string, docID uuid.UUID) ([]types.Chunk, error) {
	windows := SplitWords(text, l.cfg.ChunkSize, l.cfg.ChunkOverlap)

	chunks := make([]types.Chunk, 0, len(windows))
	for position, content := range windows {
		embedding, err := l.embedder.Embed(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", position, err)
		}
		chunks = append(chunks, types.Chunk{
			ID:        uuid.New(),
			DocID:     docID,
			Position:  position,
			Content:   content,
			Embedding: embedding,
		})
	}
	return chunks, nil
}

// SplitWords cuts the text into windows of chunkSize words with overlap
// words shared between consecutive windows.
func SplitWords(text string, chunkSize, overlap int) []string {
	words := strings.Fields(text)
	if chunkSize <= 0 {
		chunkSize = 500
	}
	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var windows []string
	for i := 0; i < len(words); i += step {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}

		content := strings.Join(words[i:end], " ")
		if strings.TrimSpace(content) != "" {
			windows = append(windows, content)
		}

		if end == len(words) {
			break
		}
	}
	return windows
}

// MoveToArchive copies a processed file into the dated archive (or bad)
// directory and removes the original. Name conflicts get a numeric suffix.
func (l *PDFLoader) MoveToArchive(filePath string, failed bool) {
	destRoot := l.cfg.ArchiveDir
	if failed {
		destRoot = l.cfg.BadDir
	}

	destDir := filepath.Join(destRoot, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		l.logger.Warn("[LOADER] error creating archive directory", "error", err)
		return
	}

	destPath := filepath.Join(destDir, filepath.Base(filePath))
	counter := 1
	for {
		if _, err := os.Stat(destPath); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(destPath)
		baseName := strings.TrimSuffix(filepath.Base(filePath), ext)
		destPath = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", baseName, counter, ext))
		counter++
	}

	if err := os.Rename(filePath, destPath); err != nil {
		l.logger.Warn("[LOADER] error moving file to archive", "error", err)
		return
	}
	l.logger.Info("[LOADER] file moved to archive", "dest", destPath)
}

func createDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func generateTitle(filePath string) string {
	fileName := filepath.Base(filePath)
	fileName = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	fileName = strings.ReplaceAll(fileName, "_", " ")
	fileName = strings.ReplaceAll(fileName, "-", " ")
	return fileName
}

// generateDocumentID derives a stable ID from the source path, so
// re-ingesting the same file updates the same document.
func generateDocumentID(filePath string) uuid.UUID {
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(filePath))
}
