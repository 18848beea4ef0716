package agent

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"ragbot/model"
	"ragbot/types"
)

// RankedHit is a chunk with its cross-encoder relevance score. Scores are
// only comparable within the reranking pass that produced them.
type RankedHit struct {
	Chunk types.Chunk
	Score float64
}

// Reranker re-scores the retrieved candidates with a cross-encoder model.
// Nearest-neighbor search recalls broadly but ranks imprecisely; this second
// pass is too expensive for the whole corpus, hence retrieve-then-rerank.
type Reranker struct {
	scorer  model.ScorerInterface
	timeout time.Duration
	logger  *slog.Logger
}

func NewReranker(scorer model.ScorerInterface, timeout time.Duration) *Reranker {
	return &Reranker{
		scorer:  scorer,
		timeout: timeout,
		logger:  slog.Default(),
	}
}

// Rerank scores every (question, chunk) pair and keeps the topK best,
// stable-sorted descending so retrieval order breaks ties. An empty input
// returns immediately without touching the scorer. A candidate whose scoring
// fails is dropped rather than ranked with a made-up score.
func (r *Reranker) Rerank(ctx context.Context, question string, hits []RetrievalHit, topK int) []RankedHit {
	if len(hits) == 0 {
		return nil
	}

	ranked := make([]RankedHit, 0, len(hits))
	for _, hit := range hits {
		score, err := r.score(ctx, question, hit.Chunk.Content)
		if err != nil {
			r.logger.Warn("[RERANK] scorer failed, dropping candidate", "chunk", hit.Chunk.ID, "error", err)
			continue
		}
		ranked = append(ranked, RankedHit{Chunk: hit.Chunk, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

func (r *Reranker) score(ctx context.Context, question, passage string) (float64, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.scorer.Score(ctx, question, passage)
}
