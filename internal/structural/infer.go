// Package structural infers a five-axis structural vector for a text and
// scores the alignment between a question's vector and an answer's vector.
// Everything is deterministic string analysis over a static vocabulary — no
// embeddings, no model call.
package structural

// #region imports
import (
	"sort"
	"strings"

	"structeval/internal/textutil"
	"structeval/internal/vocab"
)

// #endregion

// #region infer

// Infer maps a text to a structural vector under the given vocabulary,
// returning the raw hit counts alongside for debugging.
func Infer(text string, cfg *vocab.Config) (Vector, DebugInfo) {
	norm := textutil.Normalize(text)

	domain, counts := scoreDomain(norm, cfg.Domains)
	intent := matchLabels(norm, cfg.Intent)
	level := matchLabels(norm, cfg.Level)
	mode := matchLabels(norm, cfg.Mode)
	scope := pickScope(norm, cfg.Scope)

	// Fallback labels keep downstream similarity stable on sparse text.
	if len(intent) == 0 {
		intent = []string{DefaultIntent}
	}
	if len(level) == 0 {
		level = []string{DefaultLevel}
	}
	if len(mode) == 0 {
		mode = []string{DefaultMode}
	}

	sort.Strings(intent)
	sort.Strings(level)
	sort.Strings(mode)

	vec := Vector{Domain: domain, Intent: intent, Level: level, Mode: mode, Scope: scope}
	dbg := DebugInfo{
		DomainCounts: counts,
		Intent:       intent,
		Level:        level,
		Mode:         mode,
		Scope:        scope,
	}
	return vec, dbg
}

// #endregion

// #region domain

// scoreDomain counts literal keyword hits per domain over the normalized
// text. The top domain wins; a close runner-up forces "mixed", and zero
// hits everywhere means "other". Ties resolve by declaration order.
func scoreDomain(norm string, domains []vocab.Domain) (string, map[string]int) {
	counts := make(map[string]int, len(domains))

	type ranked struct {
		name string
		hits int
	}
	order := make([]ranked, 0, len(domains))

	for _, d := range domains {
		hits := 0
		for _, kw := range d.Keywords {
			if strings.Contains(norm, kw) {
				hits++
			}
		}
		counts[d.Name] = hits
		order = append(order, ranked{name: d.Name, hits: hits})
	}

	if len(order) == 0 {
		return DomainOther, counts
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].hits > order[j].hits })

	best := order[0]
	if len(order) > 1 {
		second := order[1]
		if best.hits >= MixedMinTopHits && second.hits >= best.hits-MixedRunnerUpSlack && second.hits > 0 {
			return DomainMixed, counts
		}
	}
	if best.hits == 0 {
		return DomainOther, counts
	}
	return best.name, counts
}

// #endregion

// #region labels

// matchLabels returns every label whose patterns hit the normalized text.
// Axes are sets: multiple labels may co-occur.
func matchLabels(norm string, markers []vocab.Marker) []string {
	var out []string
	for _, m := range markers {
		for _, p := range m.Patterns {
			if p.MatchString(norm) {
				out = append(out, m.Label)
				break
			}
		}
	}
	return out
}

// #endregion

// #region scope

// pickScope evaluates scope categories in fixed priority order; the first
// category with a pattern hit wins. Nothing matching means "mixed".
func pickScope(norm string, markers []vocab.Marker) string {
	priority := []string{ScopeBoundaryExtremes, ScopeConcreteCase, ScopeGeneralPrinciple}
	byLabel := make(map[string]vocab.Marker, len(markers))
	for _, m := range markers {
		byLabel[m.Label] = m
	}
	for _, label := range priority {
		m, ok := byLabel[label]
		if !ok {
			continue
		}
		for _, p := range m.Patterns {
			if p.MatchString(norm) {
				return label
			}
		}
	}
	return ScopeMixed
}

// #endregion
