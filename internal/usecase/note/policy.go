package note

import (
	"strconv"
	"strings"

	"notes-backend/internal/config"
)

// ResolveMaxSentences turns the raw max_sentences query value into the bound
// passed to the summarizer. Missing or non-numeric input yields the policy
// default; numbers are clamped into [MinSentences, MaxSentences].
func ResolveMaxSentences(raw string, p config.SummaryPolicy) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return p.DefaultSentences
	}
	return max(p.MinSentences, min(p.MaxSentences, n))
}
