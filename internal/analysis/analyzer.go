// Package analysis implements the heuristic text metrics used to bucket a
// writing sample into a coarse proficiency level. It is a stand-in scorer:
// the full per-module assessment is produced asynchronously by the result
// processor, not by this package.
package analysis

import (
	"strings"
	"unicode"
)

// Proficiency levels, from weakest to strongest.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Metrics holds the computed characteristics of a text sample.
type Metrics struct {
	WordCount         int
	SentenceCount     int
	AverageWordLength float64
	Level             string
}

// Analyze computes word count, sentence count, average word length and the
// resulting proficiency level for raw text. It is pure and deterministic:
// the same text always yields the same metrics.
func Analyze(text string) Metrics {
	words := strings.Fields(text)
	wordCount := len(words)

	sentenceCount := 0
	for _, seg := range strings.FieldsFunc(text, isSentenceBoundary) {
		if strings.TrimSpace(seg) != "" {
			sentenceCount++
		}
	}

	alphaCount := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			alphaCount++
		}
	}

	// Word count zero maps to an average of 0, never NaN.
	avgWordLength := 0.0
	if wordCount > 0 {
		avgWordLength = float64(alphaCount) / float64(wordCount)
	}

	return Metrics{
		WordCount:         wordCount,
		SentenceCount:     sentenceCount,
		AverageWordLength: avgWordLength,
		Level:             bucketLevel(avgWordLength, wordCount),
	}
}

func isSentenceBoundary(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// bucketLevel applies the fixed-priority thresholds: Advanced first, then
// Intermediate, else Beginner.
func bucketLevel(avgWordLength float64, wordCount int) string {
	switch {
	case avgWordLength > 5 && wordCount > 50:
		return LevelAdvanced
	case avgWordLength > 4 && wordCount > 30:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
