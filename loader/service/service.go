// Package service drives ingestion: it watches the source directory, feeds
// new PDFs through the loader and persists the result in the vector store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ragbot/internal"
	"ragbot/store"
	"ragbot/types"

	"github.com/google/uuid"
)

type Service struct {
	cfg    types.Config
	logger *slog.Logger
	store  store.DBStorer
	loader *internal.PDFLoader
}

func New(cfg types.Config, storer store.DBStorer, loader *internal.PDFLoader) *Service {
	return &Service{
		cfg:    cfg,
		logger: slog.Default(),
		store:  storer,
		loader: loader,
	}
}

// IngestFile loads one PDF into the vector store. The chunk swap is
// transactional: on failure the previously indexed version stays intact.
func (s *Service) IngestFile(ctx context.Context, filePath string) error {
	doc, err := s.loader.FetchFile(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filePath, err)
	}

	if err := s.store.SaveDocument(ctx, *doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	if err := s.store.ReplaceChunks(ctx, doc.ID, doc.Chunks); err != nil {
		return fmt.Errorf("failed to replace chunks: %w", err)
	}

	s.logger.Info("[INGEST] document indexed", "title", doc.Title, "chunks", len(doc.Chunks))
	return nil
}

// Run watches the source directory and ingests every new PDF until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) {
	fileChan := make(chan string, 10)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(fileChan)
		if err := internal.WatchDir(ctx, s.cfg.SourceDir, fileChan); err != nil {
			s.logger.Error("[INGEST] watcher failed", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.processFiles(ctx, fileChan)
	}()

	wg.Wait()
	s.logger.Info("[INGEST] service stopped")
}

func (s *Service) processFiles(ctx context.Context, fileChan <-chan string) {
	for filePath := range fileChan {
		// Give the writer a moment to finish before reading the file.
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return
		}

		doc, err := s.loader.FetchFile(ctx, filePath)
		if err != nil {
			s.logger.Error("[INGEST] failed to process file", "file", filePath, "error", err)
			s.loader.MoveToArchive(filePath, true)
			continue
		}

		if !s.shouldUpdate(ctx, doc.ID, doc.UpdatedAt) {
			s.logger.Info("[INGEST] document unchanged, skipping", "file", filePath)
			s.loader.MoveToArchive(filePath, false)
			continue
		}

		if err := s.store.SaveDocument(ctx, *doc); err != nil {
			s.logger.Error("[INGEST] failed to save document", "file", filePath, "error", err)
			s.loader.MoveToArchive(filePath, true)
			continue
		}
		if err := s.store.ReplaceChunks(ctx, doc.ID, doc.Chunks); err != nil {
			s.logger.Error("[INGEST] failed to replace chunks", "file", filePath, "error", err)
			s.loader.MoveToArchive(filePath, true)
			continue
		}

		s.logger.Info("[INGEST] document indexed", "title", doc.Title, "chunks", len(doc.Chunks))
		s.loader.MoveToArchive(filePath, false)
	}
}

// shouldUpdate reports whether the file is new or changed since the indexed
// version.
func (s *Service) shouldUpdate(ctx context.Context, docID uuid.UUID, modTime time.Time) bool {
	doc, err := s.store.GetDocumentByID(ctx, docID)
	if err != nil {
		// Not indexed yet.
		return true
	}
	return modTime.After(doc.UpdatedAt)
}
