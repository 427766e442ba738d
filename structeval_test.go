package structeval

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"structeval/internal/vocab"
)

func testVocab(t *testing.T) *Config {
	t.Helper()
	cfg, err := vocab.Parse([]byte(`
domains:
  physics: [entropy, quantum]
intent_markers:
  explain_mechanism: ['explain\b']
  describe_process: ['describe\b']
level_markers:
  causal: [because]
mode_markers:
  descriptive: ['\bis a\b']
scope_markers:
  boundary_extremes: [extreme]
  concrete_case: ['for example']
  general_principle: ['in general']
`))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestLoadVocabulary(t *testing.T) {
	cfg, err := LoadVocabulary(filepath.Join("structural_vocab.yaml"))
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	if len(cfg.Domains) == 0 {
		t.Error("no domains loaded")
	}

	_, err = LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml"))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("expected *ConfigError, got %T", err)
	}
}

func TestScoreAlignmentRequiresQuestion(t *testing.T) {
	cfg := testVocab(t)
	_, err := ScoreAlignment(" ", "an answer", cfg, nil, "", nil)
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InputError, got %v", err)
	}
}

func TestScoreAlignmentDeterministic(t *testing.T) {
	cfg := testVocab(t)
	a, err := ScoreAlignment("What is entropy?", "Entropy is a measure of disorder.", cfg, nil, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ScoreAlignment("What is entropy?", "Entropy is a measure of disorder.", cfg, nil, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated calls differ")
	}
}

func TestScoreAlignmentUsesLearnedOverlay(t *testing.T) {
	cfg := testVocab(t)
	question := "What is entropy?"
	answer := "The flurble determines everything."

	// Without a learned vocabulary the answer sits in no known domain.
	plain, err := ScoreAlignment(question, answer, cfg, nil, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if plain.AnswerVector.Domain != "other" {
		t.Fatalf("answer domain without overlay: got %q, want other", plain.AnswerVector.Domain)
	}

	learned := &LearnedVocabulary{DomainKeywords: []string{"flurble"}, AnswerCount: 1}
	overlaid, err := ScoreAlignment(question, answer, cfg, learned, "entropy-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if overlaid.AnswerVector.Domain != "q_entropy-1" {
		t.Errorf("answer domain with overlay: got %q, want q_entropy-1", overlaid.AnswerVector.Domain)
	}
}

func TestScoreLegacy(t *testing.T) {
	v, err := ScoreLegacy("Explain X.", "", 100, 3)
	if err != nil {
		t.Fatal(err)
	}
	if v.Score != 0 || v.Band != Band("FLUENCY") {
		t.Errorf("empty answer: got %d/%q", v.Score, v.Band)
	}

	_, err = ScoreLegacy("", "some answer", 100, 3)
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Errorf("expected *InputError for empty prompt, got %v", err)
	}
}

func TestLearnFromAnswer(t *testing.T) {
	lv := LearnFromAnswer(nil, "entropy disorder microstates")
	if lv.AnswerCount != 1 || len(lv.DomainKeywords) == 0 {
		t.Errorf("unexpected vocabulary: %+v", lv)
	}

	grown := LearnFromAnswer(&lv, "quantum decoherence")
	if grown.AnswerCount != 2 {
		t.Errorf("AnswerCount = %d, want 2", grown.AnswerCount)
	}
}

func TestBootstrapVocabulary(t *testing.T) {
	lv, err := BootstrapVocabulary("What is entropy?")
	if err != nil {
		t.Fatal(err)
	}
	if !lv.SeededFromPrompt || lv.AnswerCount != 0 {
		t.Errorf("unexpected bootstrap: %+v", lv)
	}

	_, err = BootstrapVocabulary("  ")
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Errorf("expected *InputError, got %v", err)
	}
}
