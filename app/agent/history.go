package agent

import (
	"strings"
	"sync"
)

const (
	RoleUser = "User"
	RoleBot  = "Bot"
)

// noHistory is rendered into prompts when the session has no turns yet.
const noHistory = "No previous conversation."

type Turn struct {
	Role string
	Text string
}

// History is the rolling transcript of one chat session. It is shared by
// every request hitting the service, so all access goes through the mutex.
// The cap keeps both process memory and prompt size bounded on long-running
// sessions: once exceeded, the oldest turns are evicted first.
type History struct {
	mu    sync.Mutex
	cap   int
	turns []Turn
}

func NewHistory(cap int) *History {
	if cap <= 0 {
		cap = 10
	}
	return &History{cap: cap}
}

func (h *History) Append(t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.append(t)
}

// AppendExchange records a completed user/bot exchange under one lock
// acquisition, so concurrent turns cannot interleave their halves.
func (h *History) AppendExchange(question, answer string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.append(Turn{Role: RoleUser, Text: question})
	h.append(Turn{Role: RoleBot, Text: answer})
}

func (h *History) append(t Turn) {
	h.turns = append(h.turns, t)
	if len(h.turns) > h.cap {
		h.turns = h.turns[len(h.turns)-h.cap:]
	}
}

func (h *History) Snapshot() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Lines formats the transcript as "User: ..." / "Bot: ..." strings in
// chronological order, matching the chat_history wire format.
func (h *History) Lines() []string {
	turns := h.Snapshot()
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = t.Role + ": " + t.Text
	}
	return lines
}

// Render joins the transcript for prompt use. Rendering twice without an
// append in between yields identical strings.
func (h *History) Render() string {
	lines := h.Lines()
	if len(lines) == 0 {
		return noHistory
	}
	return strings.Join(lines, "\n")
}
