package pdf

import (
	"strings"
	"unicode/utf8"
)

// Stats holds the counts derived from cleaned text.
type Stats struct {
	WordCount       int `json:"word_count" yaml:"word_count"`
	CharCount       int `json:"char_count" yaml:"char_count"`
	EstimatedTokens int `json:"estimated_tokens" yaml:"estimated_tokens"`
}

// ComputeStats counts words, characters and a rough token estimate.
// Characters are Unicode code points, not bytes. Tokens are estimated at
// four characters each.
func ComputeStats(cleaned string) Stats {
	chars := utf8.RuneCountInString(cleaned)
	return Stats{
		WordCount:       countWords(cleaned),
		CharCount:       chars,
		EstimatedTokens: chars / 4,
	}
}

// countWords counts the number of words in a text string.
func countWords(text string) int {
	words := strings.Fields(text)
	return len(words)
}
