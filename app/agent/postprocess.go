package agent

import "strings"

// Boilerplate the model is known to wrap answers in.
const (
	echoPreamble    = "Based on the provided chat history"
	trailingCaveat  = "Please note that specific requirements may vary"
	caveatCutMarker = "Please note"
)

// CleanAnswer strips artifacts the model sometimes produces: an echo of the
// question, a chat-history preamble, and a trailing disclaimer. It is
// best-effort string surgery: every rule is a no-op when its pattern is
// absent, and the function never fails.
func CleanAnswer(question, answer string) string {
	out := strings.TrimSpace(answer)

	if question != "" && strings.Contains(out, question) {
		out = strings.TrimSpace(strings.ReplaceAll(out, question, ""))
	}

	if strings.Contains(out, echoPreamble) {
		if _, rest, found := strings.Cut(out, "\n\n"); found {
			out = strings.TrimSpace(rest)
		}
	}

	if strings.Contains(out, trailingCaveat) {
		head, _, _ := strings.Cut(out, caveatCutMarker)
		out = strings.TrimSpace(head)
	}

	return out
}
