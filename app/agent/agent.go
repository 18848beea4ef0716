// Package agent implements the question-answering pipeline: routing,
// multi-query retrieval, cross-encoder reranking, context assembly and
// answer synthesis over a rolling chat history.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"ragbot/model"
	"ragbot/types"
)

// FallbackAnswer is returned on the grounded path when retrieval produced no
// usable context; the LLM is not called in that case.
const FallbackAnswer = "I don't have enough information to answer this."

// generalFallback covers a model that answers a small-talk question with an
// empty string.
const generalFallback = "I'm here and doing fine, thanks for asking!"

const groundedTemplate = `You are a helpful assistant. Answer the question clearly and concisely using ONLY the following context and chat history. Use the chat history to provide context-aware answers where relevant. If the context lacks the answer, say "I don't have enough information to answer this."
Context: %s
Chat History: %s
Question: %s
Answer:`

const generalTemplate = `You are a friendly assistant. Provide a concise answer to the question, using the chat history as context if relevant. If the history is empty or unrelated, answer the question directly.
Chat History: %s
Question: %s
Answer:`

// Agent owns one chat session and wires the pipeline stages together.
type Agent struct {
	cfg       types.Config
	llm       model.LLMInterface
	router    *Router
	expander  *Expander
	retriever *Retriever
	reranker  *Reranker
	history   *History
	logger    *slog.Logger
}

func New(cfg types.Config, llm model.LLMInterface, embedder model.EmbedderInterface, searcher Searcher, scorer model.ScorerInterface) *Agent {
	return &Agent{
		cfg:       cfg,
		llm:       llm,
		router:    NewRouter(cfg.DocKeywords),
		expander:  NewExpander(llm, cfg.LLMTimeout),
		retriever: NewRetriever(embedder, searcher),
		reranker:  NewReranker(scorer, cfg.LLMTimeout),
		history:   NewHistory(cfg.HistoryCap),
		logger:    slog.Default(),
	}
}

// History exposes the session transcript, mainly for the HTTP layer.
func (a *Agent) History() *History {
	return a.history
}

// Ask runs one conversational turn. It never returns an error: pipeline
// failures become the answer text, and the turn is recorded in history
// either way so the session stays inspectable.
func (a *Agent) Ask(ctx context.Context, question string) (string, []string) {
	answer, err := a.answer(ctx, question)
	if err != nil {
		a.logger.Error("[AGENT] turn failed", "question", question, "error", err)
		answer = "Error: " + err.Error()
	}

	a.history.AppendExchange(question, answer)
	return answer, a.history.Lines()
}

func (a *Agent) answer(ctx context.Context, question string) (string, error) {
	// Snapshot the transcript up front; no lock is held during model calls.
	historyStr := a.history.Render()

	grounded := a.router.Route(question) == DocumentGrounded
	a.logger.Info("[AGENT] routed question", "question", question, "grounded", grounded)

	if !grounded {
		raw, err := a.complete(ctx, fmt.Sprintf(generalTemplate, historyStr, question))
		if err != nil {
			return "", err
		}
		answer := CleanAnswer(question, raw)
		if answer == "" {
			answer = generalFallback
		}
		return answer, nil
	}

	queries := a.expander.Expand(ctx, question, a.cfg.Fanout)
	hits := a.retriever.Retrieve(ctx, queries, a.cfg.KPerQuery)
	a.logger.Info("[AGENT] retrieved candidates", "count", len(hits))

	ranked := a.reranker.Rerank(ctx, question, hits, a.cfg.TopK)
	contextStr := BuildContext(ranked, a.cfg.MaxContextChars)
	if contextStr == "" {
		a.logger.Info("[AGENT] no grounding context, returning fallback answer")
		return FallbackAnswer, nil
	}

	raw, err := a.complete(ctx, fmt.Sprintf(groundedTemplate, contextStr, historyStr, question))
	if err != nil {
		return "", err
	}
	return CleanAnswer(question, raw), nil
}

func (a *Agent) complete(ctx context.Context, prompt string) (string, error) {
	if count, err := CountTokens(prompt); err == nil {
		a.logger.Info("[AGENT] prompt assembled", "tokens", count, "chars", len(prompt))
	}

	if a.cfg.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.LLMTimeout)
		defer cancel()
	}
	return a.llm.Complete(ctx, prompt)
}
