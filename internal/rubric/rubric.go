// Package rubric is the legacy length- and prompt-type-aware scorer. It
// predates structural alignment and must keep producing the exact bands
// recorded in historical verdicts, so its thresholds are frozen.
package rubric

// #region imports
import (
	"fmt"
	"regexp"
	"strings"

	"structeval/internal/textutil"
)

// #endregion

// #region bands

// Band is one of four ordered quality tiers.
type Band string

const (
	BandFluency       Band = "FLUENCY"
	BandBelief        Band = "BELIEF"
	BandReasoning     Band = "REASONING"
	BandUnderstanding Band = "UNDERSTANDING"
)

// BandFromScore maps a 0-100 score to its quality band.
func BandFromScore(score int) Band {
	s := score
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	switch {
	case s >= 90:
		return BandUnderstanding
	case s >= 70:
		return BandReasoning
	case s >= 40:
		return BandBelief
	default:
		return BandFluency
	}
}

// #endregion

// #region prompt-types

// PromptType classifies what kind of response a prompt calls for.
type PromptType string

const (
	PromptDefinition  PromptType = "DEFINITION"
	PromptExplanation PromptType = "EXPLANATION"
	PromptProcedure   PromptType = "PROCEDURE"
	PromptWhy         PromptType = "WHY"
)

// ClassifyPrompt picks a prompt type via fixed prefix/substring rules on
// the lower-cased prompt. EXPLANATION is the default.
func ClassifyPrompt(prompt string) PromptType {
	p := strings.ToLower(strings.TrimSpace(prompt))
	switch {
	case strings.HasPrefix(p, "what is") || strings.HasPrefix(p, "what was"):
		return PromptDefinition
	case strings.HasPrefix(p, "explain") || strings.HasPrefix(p, "describe"):
		return PromptExplanation
	case strings.Contains(p, "should you") || strings.HasPrefix(p, "should"):
		return PromptProcedure
	case strings.HasPrefix(p, "why") || strings.Contains(" "+p+" ", " why "):
		return PromptWhy
	default:
		return PromptExplanation
	}
}

// #endregion

// #region keywords

// promptStopwords is the small stopword set used only for prompt keyword
// extraction. The learner package carries the full set.
var promptStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "was": true,
	"are": true, "and": true, "or": true, "of": true, "to": true,
	"in": true, "for": true, "its": true, "it": true, "why": true,
	"what": true, "describe": true, "explain": true,
	"problem": true, "argument": true, "paradox": true,
}

// maxPromptKeywords caps how many prompt terms the overlap check uses.
const maxPromptKeywords = 12

// ExtractPromptKeywords pulls up to 12 distinct non-stopword terms from
// the prompt, in order of appearance.
func ExtractPromptKeywords(prompt string) []string {
	seen := make(map[string]bool)
	var kws []string
	for _, w := range textutil.Tokenize(prompt) {
		if promptStopwords[w] || len(w) < 3 || seen[w] {
			continue
		}
		seen[w] = true
		kws = append(kws, w)
		if len(kws) >= maxPromptKeywords {
			break
		}
	}
	return kws
}

// keywordOverlapRatio is the fraction of prompt keywords present in the
// answer as whole words.
func keywordOverlapRatio(answer string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}
	a := strings.ToLower(answer)
	hits := 0
	for _, k := range keywords {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(k) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(a) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// #endregion

// #region causal-words

// causeWords signal explicit reasoning. Matched as substrings, which is
// deliberately loose.
var causeWords = []string{"because", "therefore", "thus", "since", "hence", "so"}

func hasCauseWord(lower string) bool {
	for _, w := range causeWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// #endregion

// #region verdict

// Signals carries the raw measurements behind a rubric verdict.
type Signals struct {
	PromptType     PromptType `json:"prompt_type"`
	WordCount      int        `json:"word_count"`
	SentenceCount  int        `json:"sentence_count"`
	KeywordOverlap float64    `json:"keyword_overlap,omitempty"`
	HasCauseWords  bool       `json:"has_cause_words,omitempty"`
	Empty          bool       `json:"empty,omitempty"`
}

// Verdict is the legacy scoring result: an integer score in [0,100], its
// band, and actionable notes for the writer.
type Verdict struct {
	Score   int      `json:"score_0_100"`
	Band    Band     `json:"band"`
	Signals Signals  `json:"signals"`
	Notes   []string `json:"notes"`
}

// #endregion

// #region score

// Score rates an answer against its prompt using keyword overlap, a
// prompt-type-specific bonus, and a soft length ramp toward minWords and
// minSentences. An empty answer scores 0 and bands FLUENCY immediately.
func Score(prompt, answer string, minWords, minSentences int) Verdict {
	ans := strings.TrimSpace(answer)
	wc := textutil.CountWords(ans)
	sc := textutil.CountSentences(ans)
	ptype := ClassifyPrompt(prompt)

	signals := Signals{PromptType: ptype, WordCount: wc, SentenceCount: sc}

	if ans == "" {
		signals.Empty = true
		return Verdict{
			Score:   0,
			Band:    BandFluency,
			Signals: signals,
			Notes:   []string{"Write an answer before checking score."},
		}
	}

	var notes []string
	score := 0

	kws := ExtractPromptKeywords(prompt)
	ov := keywordOverlapRatio(ans, kws)
	signals.KeywordOverlap = ov
	switch {
	case ov >= 0.25:
		score += 20
	case ov >= 0.10:
		score += 12
		notes = append(notes, "Bring in more of the question's key terms.")
	default:
		score += 4
		notes = append(notes, "This doesn't yet look like it's addressing the question directly.")
	}

	lower := strings.ToLower(ans)
	hasCause := hasCauseWord(lower)
	signals.HasCauseWords = hasCause

	switch ptype {
	case PromptExplanation, PromptWhy:
		if sc >= 3 {
			score += 20
		} else {
			score += 8
			notes = append(notes, "Use multiple sentences to explain the idea.")
		}
		if hasCause {
			score += 15
		} else {
			notes = append(notes, "Include a causal connector (because/therefore/so) to show reasoning.")
		}
	case PromptDefinition:
		if wc >= 12 || strings.Contains(lower, " is ") || strings.Contains(lower, " refers to ") {
			score += 20
		} else {
			score += 8
			notes = append(notes, `Define the term (e.g., "X is ...") and give one distinguishing detail.`)
		}
	case PromptProcedure:
		if strings.Contains(lower, "should") || strings.Contains(lower, "recommend") {
			score += 15
		} else {
			notes = append(notes, `State a clear recommendation ("you should...") and justify it.`)
		}
		if hasCause {
			score += 10
		}
	}

	// Soft length ramp: approach to the word minimum earns up to 20 points.
	if minWords > 0 && wc < minWords {
		ratio := float64(wc) / float64(minWords)
		if ratio > 1.0 {
			ratio = 1.0
		}
		score += int(20 * ratio)
		notes = append(notes, fmt.Sprintf("Add more detail: %d/%d words.", wc, minWords))
	} else {
		score += 20
	}

	if minSentences > 0 && sc < minSentences {
		notes = append(notes, fmt.Sprintf("Use at least %d sentences.", minSentences))
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Verdict{
		Score:   score,
		Band:    BandFromScore(score),
		Signals: signals,
		Notes:   dedupe(notes),
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// #endregion
