// Package textutil provides the deterministic lexical primitives used by
// the scorers: word and sentence counting, normalization, and keyword
// tokenization. No stemming, no lemmatization — exact surface forms only.
package textutil

// #region imports
import (
	"regexp"
	"strings"
	"unicode"
)

// #endregion

// #region patterns

var (
	// wordRE matches maximal runs of word characters plus apostrophes.
	wordRE = regexp.MustCompile(`[\p{L}\p{N}_']+`)

	// sentSplitRE splits on runs of terminal punctuation followed by
	// whitespace or end of string.
	sentSplitRE = regexp.MustCompile(`[.!?]+(\s+|$)`)

	// tokenRE matches lowercase keyword tokens: letters with internal
	// digits, apostrophes, or hyphens, never ending on a separator.
	tokenRE = regexp.MustCompile(`[a-z][a-z0-9'-]*[a-z0-9]|[a-z]`)

	spaceRE = regexp.MustCompile(`\s+`)
)

// #endregion

// #region count-words

// CountWords counts maximal runs of word characters (plus apostrophes).
// Empty or whitespace-only text yields 0.
func CountWords(text string) int {
	n := 0
	for _, m := range wordRE.FindAllString(text, -1) {
		if hasWordChar(m) {
			n++
		}
	}
	return n
}

func hasWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// #endregion

// #region count-sentences

// CountSentences counts sentence boundaries (runs of .!? followed by
// whitespace or end of string). Empty text yields 0; any non-empty text
// yields at least 1, since a missing terminal period is not zero sentences.
func CountSentences(text string) int {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0
	}
	n := 0
	for _, p := range sentSplitRE.Split(t, -1) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}

// #endregion

// #region normalize

// Normalize lower-cases, trims, and collapses whitespace runs to single
// spaces. All substring and pattern matching in the scorers runs over
// normalized text.
func Normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	return spaceRE.ReplaceAllString(t, " ")
}

// #endregion

// #region tokenize

// Tokenize lower-cases text and extracts keyword tokens in order of
// appearance, duplicates included.
func Tokenize(text string) []string {
	return tokenRE.FindAllString(strings.ToLower(strings.TrimSpace(text)), -1)
}

// #endregion
