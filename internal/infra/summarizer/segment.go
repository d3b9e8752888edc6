// Package summarizer provides the extractive note summarizer.
// It splits text into sentences, scores each sentence by whole-text word frequency
// and returns the highest-scoring sentences in their original order.
package summarizer

import (
	"strings"
	"unicode"
)

// Segment splits text into an ordered list of trimmed, non-empty sentences.
//
// A split happens after '.', '!' or '?' when the next character is whitespace.
// The terminator stays with the preceding sentence and the whitespace run is dropped.
// Text without any terminator followed by whitespace yields a single sentence.
// Empty or whitespace-only text yields an empty list.
//
// Example:
//
//	Segment("Hello world. This is great! Is it?")
//	// ["Hello world.", "This is great!", "Is it?"]
func Segment(text string) []string {
	text = strings.TrimSpace(text)
	sentences := make([]string, 0, strings.Count(text, ". ")+1)
	if text == "" {
		return sentences
	}

	start := 0
	afterTerminator := false
	for i, r := range text {
		if afterTerminator && unicode.IsSpace(r) {
			sentences = appendSentence(sentences, text[start:i])
			start = i
		}
		afterTerminator = isTerminator(r)
	}
	return appendSentence(sentences, text[start:])
}

func appendSentence(sentences []string, candidate string) []string {
	if s := strings.TrimSpace(candidate); s != "" {
		return append(sentences, s)
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
