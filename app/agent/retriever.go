package agent

import (
	"context"
	"log/slog"

	"ragbot/model"
	"ragbot/types"

	"github.com/google/uuid"
)

// Searcher is the read side of the vector index.
type Searcher interface {
	Search(ctx context.Context, queryVec []float32, limit int) ([]types.Chunk, error)
}

// RetrievalHit is one candidate chunk together with the query variant that
// found it. Order carries no meaning until the reranker has run.
type RetrievalHit struct {
	Chunk   types.Chunk
	Variant string
}

// Retriever fans the expanded queries out against the vector index and
// merges the hits, keeping each chunk once.
type Retriever struct {
	embedder model.EmbedderInterface
	searcher Searcher
	logger   *slog.Logger
}

func NewRetriever(embedder model.EmbedderInterface, searcher Searcher) *Retriever {
	return &Retriever{
		embedder: embedder,
		searcher: searcher,
		logger:   slog.Default(),
	}
}

// Retrieve returns the merged candidates for all variants. A variant whose
// embedding or search fails is skipped; an empty or unreachable index yields
// an empty result, which the caller treats as "no grounding available".
func (r *Retriever) Retrieve(ctx context.Context, queries ExpandedQuery, kPerQuery int) []RetrievalHit {
	seen := make(map[uuid.UUID]struct{})
	var hits []RetrievalHit

	for _, variant := range queries.Variants {
		vec, err := r.embedder.Embed(ctx, variant)
		if err != nil {
			r.logger.Warn("[RETRIEVE] failed to embed variant", "variant", variant, "error", err)
			continue
		}

		chunks, err := r.searcher.Search(ctx, vec, kPerQuery)
		if err != nil {
			r.logger.Warn("[RETRIEVE] index search failed", "variant", variant, "error", err)
			continue
		}

		for _, ch := range chunks {
			if _, ok := seen[ch.ID]; ok {
				continue
			}
			seen[ch.ID] = struct{}{}
			hits = append(hits, RetrievalHit{Chunk: ch, Variant: variant})
		}
	}

	return hits
}
