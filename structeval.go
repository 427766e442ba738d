// Package structeval scores free-text answers against open-ended prompts by
// structural alignment: both texts are mapped to a five-axis structural
// vector (domain, intent, level, mode, scope) under a static vocabulary,
// and the two vectors are compared axis by axis. No embeddings, no model
// judge — every verdict is deterministic and explainable.
//
// Two scoring modes are supported. Alignment mode is primary; the legacy
// rubric mode (length and prompt-type heuristics, 0-100 with quality bands)
// stays available because historical verdicts depend on its thresholds.
//
// Scoring is pure: callers own persistence of the per-question learned
// vocabulary and the serialization discipline around updating it (see
// internal/vocabstore for the reference implementation).
package structeval

// #region imports
import (
	"fmt"
	"strings"

	"structeval/internal/learner"
	"structeval/internal/rubric"
	"structeval/internal/structural"
	"structeval/internal/vocab"
)

// #endregion

// #region aliases

// Re-exported core types.
type (
	// Config is the static scoring vocabulary, immutable after load.
	Config = vocab.Config

	// ConfigError reports an unusable vocabulary resource.
	ConfigError = vocab.ConfigError

	// LearnedVocabulary is a question's accumulated keyword set.
	LearnedVocabulary = learner.LearnedVocabulary

	// Vector is the five-axis structural classification of a text.
	Vector = structural.Vector

	// Weights controls per-axis scoring contribution.
	Weights = structural.Weights

	// AlignVerdict is the alignment-mode scoring payload.
	AlignVerdict = structural.Verdict

	// LegacyVerdict is the legacy rubric-mode scoring payload.
	LegacyVerdict = rubric.Verdict

	// Band is one of the four ordered quality tiers.
	Band = rubric.Band
)

// #endregion

// #region input-error

// InputError reports required text missing from a scoring call. It is
// surfaced to the caller and never retried.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("missing required %s text", e.Field)
}

// #endregion

// #region load

// LoadVocabulary parses the YAML vocabulary resource at path. It fails with
// a *ConfigError on a missing file, unparsable structure, or invalid
// pattern — never by silently defaulting.
func LoadVocabulary(path string) (*Config, error) {
	return vocab.Load(path)
}

// #endregion

// #region score-alignment

// ScoreAlignment infers structural vectors for question and answer and
// scores their alignment in [0,1]. A non-empty learned vocabulary is
// overlaid onto cfg as a question-specific domain before inference. A nil
// weights uses the defaults.
func ScoreAlignment(question, answer string, cfg *Config, learned *LearnedVocabulary, questionKey string, weights *Weights) (*AlignVerdict, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &InputError{Field: "question"}
	}
	effective := learner.Overlay(cfg, learned, questionKey)
	return structural.Align(question, answer, effective, weights), nil
}

// #endregion

// #region score-legacy

// ScoreLegacy rates an answer with the legacy rubric: keyword overlap,
// prompt-type bonus, and a soft length ramp toward minWords/minSentences.
// The result is an integer in [0,100] plus its quality band.
func ScoreLegacy(prompt, answer string, minWords, minSentences int) (LegacyVerdict, error) {
	if strings.TrimSpace(prompt) == "" {
		return LegacyVerdict{}, &InputError{Field: "prompt"}
	}
	return rubric.Score(prompt, answer, minWords, minSentences), nil
}

// #endregion

// #region learn

// LearnFromAnswer merges the keywords of a new answer into existing and
// returns the grown vocabulary. existing may be nil. Pure: safe to call
// inside a caller's CAS retry loop.
func LearnFromAnswer(existing *LearnedVocabulary, answerText string) LearnedVocabulary {
	return learner.Merge(existing, answerText)
}

// BootstrapVocabulary seeds a learned vocabulary from the question's own
// prompt, for use when the question is first created.
func BootstrapVocabulary(prompt string) (LearnedVocabulary, error) {
	if strings.TrimSpace(prompt) == "" {
		return LearnedVocabulary{}, &InputError{Field: "prompt"}
	}
	return learner.Bootstrap(prompt), nil
}

// #endregion
