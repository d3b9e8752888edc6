package summarizer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"notes-backend/internal/utils/text"
)

// MethodNaiveExtractive identifies the frequency-based extractive method in API responses.
const MethodNaiveExtractive = "naive-extractive"

// minTokenLength is the exclusive lower bound on token length, in characters.
const minTokenLength = 2

// ErrInvalidMaxSentences is returned when a caller asks for fewer than one sentence.
var ErrInvalidMaxSentences = errors.New("max sentences must be at least 1")

// wordPattern matches word-boundary tokens: Unicode letters, digits and underscore.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// scoredSentence is a sentence with its position in the source text and its score.
type scoredSentence struct {
	index int
	text  string
	score int
}

// Summarize returns an extractive summary of text made of at most maxSentences sentences.
//
// Sentences are scored by summing, for every token they contain, how often that token
// occurs in the whole text. The highest-scoring sentences win (earlier sentences win ties)
// and are joined with single spaces in their original order.
//
// Summarize never fails. maxSentences is expected to be positive; callers that need the
// bound enforced should use Extractive.Summarize, which rejects values below 1.
func Summarize(text string, maxSentences int) string {
	summary, _, _ := summarize(text, maxSentences)
	return summary
}

// summarize returns the summary along with the number of selected and source sentences.
func summarize(text string, maxSentences int) (string, int, int) {
	if text == "" {
		return "", 0, 0
	}

	sentences := Segment(text)
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " "), len(sentences), len(sentences)
	}
	if maxSentences < 1 {
		return "", 0, len(sentences)
	}

	freq := wordFrequencies(text)
	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = scoredSentence{index: i, text: s, score: scoreSentence(s, freq)}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})

	top := scored[:maxSentences]
	sort.Slice(top, func(i, j int) bool { return top[i].index < top[j].index })

	selected := make([]string, len(top))
	for i, s := range top {
		selected[i] = s.text
	}
	return strings.Join(selected, " "), len(selected), len(sentences)
}

// wordFrequencies counts every token of the whole text.
func wordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, tok := range tokenize(text) {
		freq[tok]++
	}
	return freq
}

// scoreSentence sums the frequency of each token occurrence in the sentence.
func scoreSentence(sentence string, freq map[string]int) int {
	score := 0
	for _, tok := range tokenize(sentence) {
		score += freq[tok]
	}
	return score
}

// tokenize returns the lower-cased words of s longer than minTokenLength characters.
func tokenize(s string) []string {
	words := wordPattern.FindAllString(s, -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > minTokenLength {
			tokens = append(tokens, strings.ToLower(w))
		}
	}
	return tokens
}

// Extractive is the note summarizer backed by Summarize.
// It validates the sentence bound and records summary metrics.
type Extractive struct {
	metricsRecorder SummaryMetricsRecorder
}

// NewExtractive creates an extractive summarizer that records Prometheus metrics.
func NewExtractive() *Extractive {
	return &Extractive{metricsRecorder: NewPrometheusSummaryMetrics()}
}

// NewExtractiveWithRecorder creates an extractive summarizer with a custom metrics recorder.
func NewExtractiveWithRecorder(recorder SummaryMetricsRecorder) *Extractive {
	return &Extractive{metricsRecorder: recorder}
}

// Summarize returns a summary of content with at most maxSentences sentences.
// Returns ErrInvalidMaxSentences if maxSentences is below 1.
func (e *Extractive) Summarize(_ context.Context, content string, maxSentences int) (string, error) {
	if maxSentences < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidMaxSentences, maxSentences)
	}

	start := time.Now()
	summary, selected, total := summarize(content, maxSentences)

	if e.metricsRecorder != nil {
		e.metricsRecorder.RecordDuration(time.Since(start))
		e.metricsRecorder.RecordLength(text.CountRunes(summary))
		e.metricsRecorder.RecordSentences(selected, total)
	}
	return summary, nil
}

// Method returns the identifier of the summarization method.
func (e *Extractive) Method() string {
	return MethodNaiveExtractive
}
