package structural

// #region imports
import (
	"fmt"
	"math"
	"sort"

	"structeval/internal/vocab"
)

// #endregion

// #region penalties

// Penalty multipliers, applied in fixed order against the running score.
const (
	categoryErrorPenalty = 0.6
	offTopicPenalty      = 0.5
	scopeMismatchPenalty = 0.85
)

// offTopicIntentCeiling is the intent Jaccard below which a domain mismatch
// counts as off-topic drift.
const offTopicIntentCeiling = 0.34

// depthIntents are question intents that demand an explanatory answer; an
// answer operating entirely at a normative or historical register against
// one of these is a category error.
var depthIntents = map[string]bool{
	"explain_mechanism":  true,
	"analyze_limits":     true,
	"interpret_evidence": true,
}

var shallowLevels = map[string]bool{
	"normative":  true,
	"historical": true,
}

// #endregion

// #region align

// Align infers structural vectors for the question and the answer and
// scores their per-axis alignment. A nil weights uses DefaultWeights.
func Align(question, answer string, cfg *vocab.Config, weights *Weights) *Verdict {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}

	qVec, qDbg := Infer(question, cfg)
	aVec, aDbg := Infer(answer, cfg)

	axes := AxisScores{
		Domain: simDomain(qVec.Domain, aVec.Domain),
		Intent: jaccard(qVec.Intent, aVec.Intent),
		Level:  jaccard(qVec.Level, aVec.Level),
		Mode:   jaccard(qVec.Mode, aVec.Mode),
		Scope:  simScope(qVec.Scope, aVec.Scope),
	}

	base := w.Domain*axes.Domain + w.Intent*axes.Intent + w.Level*axes.Level +
		w.Mode*axes.Mode + w.Scope*axes.Scope

	flags := detectFlags(qVec, aVec, axes)

	score := base
	var penalties []string
	if flags.CategoryError {
		score *= categoryErrorPenalty
		penalties = append(penalties, fmt.Sprintf("category_error x%.1f", categoryErrorPenalty))
	}
	if flags.OffTopic {
		score *= offTopicPenalty
		penalties = append(penalties, fmt.Sprintf("off_topic x%.1f", offTopicPenalty))
	}
	if flags.ScopeMismatch {
		score *= scopeMismatchPenalty
		penalties = append(penalties, fmt.Sprintf("scope_mismatch x%.2f", scopeMismatchPenalty))
	}
	score = clamp01(score)

	return &Verdict{
		StructuralScore: round4(score),
		BaseScore:       round4(base),
		AxisScores: AxisScores{
			Domain: round4(axes.Domain),
			Intent: round4(axes.Intent),
			Level:  round4(axes.Level),
			Mode:   round4(axes.Mode),
			Scope:  round4(axes.Scope),
		},
		Flags:          flags,
		Penalties:      penalties,
		QuestionVector: qVec,
		AnswerVector:   aVec,
		Debug:          Debug{Question: qDbg, Answer: aDbg},
		Explain:        explain(axes, flags),
	}
}

// #endregion

// #region similarity

func simDomain(q, a string) float64 {
	if q == a {
		return 1.0
	}
	if q == DomainMixed && a != DomainOther {
		return 0.7
	}
	if a == DomainMixed && q != DomainOther {
		return 0.7
	}
	return 0.0
}

func simScope(q, a string) float64 {
	if q == a {
		return 1.0
	}
	if q == ScopeMixed || a == ScopeMixed {
		return 0.7
	}
	return 0.0
}

// jaccard computes the Jaccard index of two label sets. Both empty counts
// as perfect agreement; exactly one empty as total disagreement.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	in := make(map[string]bool, len(a))
	for _, s := range a {
		in[s] = true
	}
	inter := 0
	union := len(a)
	for _, s := range b {
		if in[s] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// #endregion

// #region flags

func detectFlags(qVec, aVec Vector, axes AxisScores) Flags {
	f := Flags{}

	// Off-topic: no domain agreement at all plus weak intent overlap.
	f.OffTopic = axes.Domain == 0.0 && axes.Intent < offTopicIntentCeiling

	// Category error: the question demands mechanism/limits/evidence but
	// the answer's level set sits entirely in normative/historical.
	if intersects(qVec.Intent, depthIntents) && subsetOf(aVec.Level, shallowLevels) {
		f.CategoryError = true
	}

	// Scope mismatch: the question stresses boundary/extreme cases but the
	// answer never leaves generic territory.
	f.ScopeMismatch = qVec.Scope == ScopeBoundaryExtremes &&
		aVec.Scope != ScopeBoundaryExtremes && aVec.Scope != ScopeMixed

	// Informational only, never penalized.
	f.StaysOnTopic = qVec.Domain == aVec.Domain || axes.Intent >= 0.5 || axes.Level >= 0.5

	return f
}

func intersects(labels []string, set map[string]bool) bool {
	for _, l := range labels {
		if set[l] {
			return true
		}
	}
	return false
}

func subsetOf(labels []string, set map[string]bool) bool {
	if len(labels) == 0 {
		return false
	}
	for _, l := range labels {
		if !set[l] {
			return false
		}
	}
	return true
}

// #endregion

// #region explain

// explain produces up to two lowest-axis notes (below 0.6) plus one note
// per active penalty flag.
func explain(axes AxisScores, flags Flags) []string {
	type axisScore struct {
		name  string
		score float64
	}
	ranked := []axisScore{
		{"domain", axes.Domain},
		{"intent", axes.Intent},
		{"level", axes.Level},
		{"mode", axes.Mode},
		{"scope", axes.Scope},
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	var out []string
	for _, as := range ranked[:2] {
		if as.score < 0.6 {
			out = append(out, fmt.Sprintf("Low alignment on %s (score %.2f).", as.name, as.score))
		}
	}
	if flags.CategoryError {
		out = append(out, "Category error: answer operates in a different explanatory level than the question asks for.")
	}
	if flags.ScopeMismatch {
		out = append(out, "Scope mismatch: question stresses boundary/extremes but answer stays generic.")
	}
	if flags.OffTopic {
		out = append(out, "Off-topic drift: domain/intent overlap is too weak.")
	}
	return out
}

// #endregion

// #region math-helpers

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// #endregion
