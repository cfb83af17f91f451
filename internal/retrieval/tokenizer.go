package retrieval

import (
	"regexp"
	"strings"
)

// nonWord matches every character that is neither a word character nor whitespace.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Tokenize lower-cases text, strips punctuation, and splits on whitespace
// runs. It is a pure mapping from text to tokens, so callers may cache
// results keyed on exact text equality. Empty or all-punctuation input
// yields an empty slice.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = nonWord.ReplaceAllString(text, "")
	return strings.Fields(text)
}
