package agent

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// BuildContext joins the ranked chunk texts in rank order, separated by a
// single space. maxChars bounds the result so the prompt stays inside the
// model's input window; the chunk that crosses the limit is still included,
// everything ranked below it is cut. maxChars <= 0 disables the bound.
func BuildContext(ranked []RankedHit, maxChars int) string {
	var sb strings.Builder
	for _, hit := range ranked {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(hit.Chunk.Content)
		if maxChars > 0 && sb.Len() >= maxChars {
			break
		}
	}
	return sb.String()
}

// CountTokens reports the tiktoken length of a prompt. The encoding matches
// no local model exactly, but it tracks real prompt growth closely enough
// for budget logging.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
