package structural

import (
	"math"
	"reflect"
	"testing"
)

func TestAlignMatchedPair(t *testing.T) {
	cfg := testConfig(t)

	q := "What is entropy?"
	a := "Entropy is a measure of disorder in a system."

	v := Align(q, a, cfg, nil)

	if v.QuestionVector.Domain != "physics" || v.AnswerVector.Domain != "physics" {
		t.Errorf("domains: got %q / %q, want physics / physics",
			v.QuestionVector.Domain, v.AnswerVector.Domain)
	}
	if v.AxisScores.Domain != 1.0 {
		t.Errorf("domain axis: got %v, want 1.0", v.AxisScores.Domain)
	}
	// No intent markers hit either text, so both carry the default label
	// and the axis scores perfect agreement.
	if !reflect.DeepEqual(v.QuestionVector.Intent, []string{DefaultIntent}) {
		t.Errorf("question intent: got %v", v.QuestionVector.Intent)
	}
	if v.AxisScores.Intent != 1.0 {
		t.Errorf("intent axis: got %v, want 1.0", v.AxisScores.Intent)
	}
	if v.Flags.OffTopic || v.Flags.CategoryError || v.Flags.ScopeMismatch {
		t.Errorf("unexpected flags: %+v", v.Flags)
	}
	if !v.Flags.StaysOnTopic {
		t.Error("StaysOnTopic should be set for a shared domain")
	}
}

func TestAlignDeterminism(t *testing.T) {
	cfg := testConfig(t)

	q := "Explain why does entropy grow at the extreme?"
	a := "Entropy is a measure that grows because microstates multiply, for example in gases."

	first := Align(q, a, cfg, nil)
	second := Align(q, a, cfg, nil)
	if !reflect.DeepEqual(first, second) {
		t.Error("Align is not deterministic for fixed inputs")
	}
}

func TestAlignBounds(t *testing.T) {
	cfg := testConfig(t)

	pairs := [][2]string{
		{"What is entropy?", ""},
		{"Explain why does the cell divide?", "You should never ask."},
		{"a", "b"},
		{"Entropy quantum cell gene.", "In general, for example, extreme."},
	}
	for _, p := range pairs {
		v := Align(p[0], p[1], cfg, nil)
		if v.StructuralScore < 0 || v.StructuralScore > 1 {
			t.Errorf("score out of bounds for %q/%q: %v", p[0], p[1], v.StructuralScore)
		}
	}
}

func TestAlignScopeMismatchPenalty(t *testing.T) {
	cfg := testConfig(t)

	// Question stresses an extreme; the answer commits to a concrete case,
	// which is the only way to leave the "mixed" default.
	q := "Explain why does entropy grow at the extreme?"
	a := "Entropy is a measure of disorder because microstates multiply, for example in gases."

	v := Align(q, a, cfg, nil)

	if !v.Flags.ScopeMismatch {
		t.Fatalf("expected scope_mismatch, flags: %+v", v.Flags)
	}
	if v.Flags.OffTopic || v.Flags.CategoryError {
		t.Fatalf("unexpected extra penalties: %+v", v.Flags)
	}
	if math.Abs(v.StructuralScore-0.85*v.BaseScore) > 1e-3 {
		t.Errorf("score %v is not base %v x 0.85", v.StructuralScore, v.BaseScore)
	}
}

func TestAlignPenaltyStacking(t *testing.T) {
	cfg := testConfig(t)

	// Question demands a mechanism in physics; the answer is purely
	// normative and lives in a different domain.
	q := "Explain why does entropy increase?"
	a := "You should study the cell."

	v := Align(q, a, cfg, nil)

	if !v.Flags.CategoryError || !v.Flags.OffTopic {
		t.Fatalf("expected category_error and off_topic, flags: %+v", v.Flags)
	}
	if v.Flags.ScopeMismatch {
		t.Fatalf("unexpected scope_mismatch: %+v", v.Flags)
	}

	// domain 0, intent 0, level 0, mode 1, scope 1 under default weights.
	wantBase := 0.30
	if math.Abs(v.BaseScore-wantBase) > 1e-9 {
		t.Errorf("base: got %v, want %v", v.BaseScore, wantBase)
	}
	want := round4(wantBase * 0.6 * 0.5)
	if math.Abs(v.StructuralScore-want) > 1e-9 {
		t.Errorf("score: got %v, want %v", v.StructuralScore, want)
	}
	if len(v.Penalties) != 2 {
		t.Errorf("penalties: got %v", v.Penalties)
	}
}

func TestAlignExplain(t *testing.T) {
	cfg := testConfig(t)

	v := Align("Explain why does entropy increase?", "You should study the cell.", cfg, nil)

	// Two lowest axes are below 0.6, plus one note per active flag.
	if len(v.Explain) != 4 {
		t.Errorf("explain: got %d notes: %v", len(v.Explain), v.Explain)
	}
}

func TestAlignCustomWeights(t *testing.T) {
	cfg := testConfig(t)

	w := Weights{Domain: 1.0}
	v := Align("What is entropy?", "Entropy is a measure of disorder.", cfg, &w)
	if v.BaseScore != 1.0 {
		t.Errorf("domain-only base: got %v, want 1.0", v.BaseScore)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both-empty", nil, nil, 1.0},
		{"one-empty", []string{"x"}, nil, 0.0},
		{"identical", []string{"x", "y"}, []string{"x", "y"}, 1.0},
		{"disjoint", []string{"x"}, []string{"y"}, 0.0},
		{"partial", []string{"x", "y"}, []string{"y", "z"}, 1.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}
