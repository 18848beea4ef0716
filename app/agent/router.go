package agent

import "strings"

type RouteKind int

const (
	// General questions are answered by the LLM from chat history alone.
	General RouteKind = iota
	// DocumentGrounded questions go through the retrieval pipeline.
	DocumentGrounded
)

// Router is a deterministic keyword classifier. It deliberately avoids a
// model call: routing must be cheap and predictable, so a question is
// document-related iff it contains one of the configured keywords.
type Router struct {
	keywords []string
}

func NewRouter(keywords []string) *Router {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &Router{keywords: lowered}
}

func (r *Router) Route(question string) RouteKind {
	q := strings.ToLower(question)
	for _, kw := range r.keywords {
		if strings.Contains(q, kw) {
			return DocumentGrounded
		}
	}
	return General
}
