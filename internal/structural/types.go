package structural

// #region vector

// Vector classifies a text along five axes. Domain and Scope are single
// picks; Intent, Level, and Mode are label sets (kept sorted). Inference
// guarantees the label sets are never empty.
type Vector struct {
	Domain string   `json:"domain"`
	Intent []string `json:"intent"`
	Level  []string `json:"level"`
	Mode   []string `json:"mode"`
	Scope  string   `json:"scope"`
}

// DebugInfo carries the raw inference evidence for transparency.
type DebugInfo struct {
	DomainCounts map[string]int `json:"domain_counts"`
	Intent       []string       `json:"intent"`
	Level        []string       `json:"level"`
	Mode         []string       `json:"mode"`
	Scope        string         `json:"scope"`
}

// #endregion

// #region defaults

// Sentinel domain classifications.
const (
	DomainMixed = "mixed"
	DomainOther = "other"
)

// Fallback labels applied when an axis detects nothing, so downstream
// similarity never degenerates to a vacuous comparison.
const (
	DefaultIntent = "describe_process"
	DefaultLevel  = "interpretive"
	DefaultMode   = "descriptive"
	ScopeMixed    = "mixed"
)

// Scope categories, evaluated in this priority order.
const (
	ScopeBoundaryExtremes = "boundary_extremes"
	ScopeConcreteCase     = "concrete_case"
	ScopeGeneralPrinciple = "general_principle"
)

// #endregion

// #region tuning

// Empirically chosen domain tie-break thresholds, preserved from the
// original tuning rather than re-derived.
const (
	// MixedMinTopHits is the minimum top-domain hit count before a close
	// runner-up forces a "mixed" classification.
	MixedMinTopHits = 2

	// MixedRunnerUpSlack is how close (in hits) the runner-up must be to
	// the top domain to force "mixed".
	MixedRunnerUpSlack = 1
)

// #endregion

// #region weights

// Weights controls the per-axis contribution to the base alignment score.
type Weights struct {
	Domain float64
	Intent float64
	Level  float64
	Mode   float64
	Scope  float64
}

// DefaultWeights returns the standard axis weighting.
func DefaultWeights() Weights {
	return Weights{Domain: 0.25, Intent: 0.25, Level: 0.20, Mode: 0.15, Scope: 0.15}
}

// #endregion

// #region verdict

// AxisScores holds the per-axis similarity between question and answer.
type AxisScores struct {
	Domain float64 `json:"domain"`
	Intent float64 `json:"intent"`
	Level  float64 `json:"level"`
	Mode   float64 `json:"mode"`
	Scope  float64 `json:"scope"`
}

// Flags are independent boolean verdicts, intentionally conservative so a
// flag fires only on strong evidence.
type Flags struct {
	OffTopic      bool `json:"off_topic"`
	CategoryError bool `json:"category_error"`
	ScopeMismatch bool `json:"scope_mismatch"`
	StaysOnTopic  bool `json:"stays_on_topic"`
}

// Debug pairs the inference evidence for both texts.
type Debug struct {
	Question DebugInfo `json:"question"`
	Answer   DebugInfo `json:"answer"`
}

// Verdict is the full alignment-mode scoring payload. Read-only once built.
type Verdict struct {
	StructuralScore float64    `json:"structural_score"`
	BaseScore       float64    `json:"base_score"`
	AxisScores      AxisScores `json:"axis_scores"`
	Flags           Flags      `json:"flags"`
	Penalties       []string   `json:"penalties"`
	QuestionVector  Vector     `json:"question_vector"`
	AnswerVector    Vector     `json:"answer_vector"`
	Debug           Debug      `json:"debug"`
	Explain         []string   `json:"explain"`
}

// #endregion
