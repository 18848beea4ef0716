package store

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"sync"

	"ragbot/types"

	"github.com/google/uuid"
)

// MemoryStore keeps documents and chunks in process memory and searches them
// by cosine similarity. Used in tests and for running without Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[uuid.UUID]types.Document
	chunks map[uuid.UUID][]types.Chunk // doc_id -> chunks
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:   make(map[uuid.UUID]types.Document),
		chunks: make(map[uuid.UUID][]types.Chunk),
	}
}

func (m *MemoryStore) SaveDocument(_ context.Context, doc types.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return nil
}

func (m *MemoryStore) GetDocumentByID(_ context.Context, docID uuid.UUID) (*types.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[docID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &doc, nil
}

// ReplaceChunks swaps the chunk set of one document atomically under the
// write lock, mirroring the transactional guarantee of the Postgres store.
func (m *MemoryStore) ReplaceChunks(_ context.Context, docID uuid.UUID, chunks []types.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks[docID] = append([]types.Chunk(nil), chunks...)
	return nil
}

func (m *MemoryStore) Search(_ context.Context, queryVec []float32, limit int) ([]types.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []types.Chunk
	for _, chunks := range m.chunks {
		for _, ch := range chunks {
			ch.Distance = cosineSimilarity(queryVec, ch.Embedding)
			all = append(all, ch)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Distance > all[j].Distance
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
