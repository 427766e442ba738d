// Package learner grows a per-question vocabulary from submitted answers.
//
// On each answer submission the caller extracts keywords from the answer and
// merges them into the question's LearnedVocabulary. At scoring time the
// accumulated keywords are overlaid onto the base vocabulary as a
// question-specific domain, so the scorer gets more discriminating about a
// question as more answers arrive.
//
// Every function here is pure: Merge returns a fresh value and never mutates
// its input, which is what makes the caller's CAS retry loop correct.
package learner

// #region imports
import (
	"fmt"
	"sort"

	"structeval/internal/textutil"
	"structeval/internal/vocab"
)

// #endregion

// #region constants

// Empirically chosen thresholds, preserved from the original tuning.
const (
	// MinWordLen is the shortest token kept as a keyword.
	MinWordLen = 3

	// MaxLearnedKeywords caps the per-question keyword set.
	MaxLearnedKeywords = 200

	// MinBigramLen is the shortest adjacent-token bigram kept as a
	// keyword — a proxy for "descriptive enough to be specific".
	MinBigramLen = 8
)

// #endregion

// #region learned-vocabulary

// LearnedVocabulary is the per-question keyword set. It is owned by one
// question, persisted by the caller between scoring calls, and grows
// monotonically (append-only union) until it hits the cap.
type LearnedVocabulary struct {
	DomainKeywords   []string `json:"domain_keywords"`
	SeededFromPrompt bool     `json:"from_prompt"`
	AnswerCount      int      `json:"answer_count"`
}

// #endregion

// #region extract

// ExtractKeywords extracts candidate keywords from text: unigrams of at
// least minLen characters that are not stopwords, in first-seen order,
// followed by qualifying adjacent-token bigrams. The order is not
// significance-ranked.
func ExtractKeywords(text string, minLen int) []string {
	if minLen <= 0 {
		minLen = MinWordLen
	}

	var meaningful []string
	for _, w := range textutil.Tokenize(text) {
		if len(w) >= minLen && !stopwords[w] {
			meaningful = append(meaningful, w)
		}
	}

	seen := make(map[string]bool)
	var terms []string
	for _, w := range meaningful {
		if seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}

	// Adjacent-token bigrams, kept only when descriptive enough.
	seenBg := make(map[string]bool)
	for i := 0; i+1 < len(meaningful); i++ {
		bg := fmt.Sprintf("%s %s", meaningful[i], meaningful[i+1])
		if len(bg) < MinBigramLen || seenBg[bg] {
			continue
		}
		seenBg[bg] = true
		terms = append(terms, bg)
	}

	return terms
}

// #endregion

// #region bootstrap

// Bootstrap seeds a LearnedVocabulary from the question's own prompt, so a
// brand-new question is not scored against an empty overlay.
func Bootstrap(prompt string) LearnedVocabulary {
	kws := ExtractKeywords(prompt, MinWordLen)
	if len(kws) > MaxLearnedKeywords {
		kws = kws[:MaxLearnedKeywords]
	}
	return LearnedVocabulary{
		DomainKeywords:   kws,
		SeededFromPrompt: true,
		AnswerCount:      0,
	}
}

// #endregion

// #region merge

// Merge unions the keywords extracted from answerText into existing and
// returns the result. existing may be nil. The output keyword list is
// sorted lexicographically before capping so repeated merges are
// reproducible regardless of extraction order.
func Merge(existing *LearnedVocabulary, answerText string) LearnedVocabulary {
	out := LearnedVocabulary{}
	current := make(map[string]bool)
	if existing != nil {
		out.SeededFromPrompt = existing.SeededFromPrompt
		out.AnswerCount = existing.AnswerCount
		for _, kw := range existing.DomainKeywords {
			current[kw] = true
		}
	}

	for _, kw := range ExtractKeywords(answerText, MinWordLen) {
		current[kw] = true
	}

	merged := make([]string, 0, len(current))
	for kw := range current {
		merged = append(merged, kw)
	}
	sort.Strings(merged)
	if len(merged) > MaxLearnedKeywords {
		merged = merged[:MaxLearnedKeywords]
	}

	out.DomainKeywords = merged
	out.AnswerCount++
	return out
}

// #endregion

// #region overlay

// Overlay returns base augmented with one extra domain "q_<questionKey>"
// holding the learned keywords. With a nil or empty learned vocabulary the
// base config is returned unchanged.
func Overlay(base *vocab.Config, learned *LearnedVocabulary, questionKey string) *vocab.Config {
	if learned == nil || len(learned.DomainKeywords) == 0 {
		return base
	}
	return base.WithDomain("q_"+questionKey, learned.DomainKeywords)
}

// #endregion
