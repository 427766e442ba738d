package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
domains:
  physics:
    - Entropy
    - quantum
  biology:
    - cell
    - gene
intent_markers:
  explain_mechanism:
    - 'explain\b'
    - 'why does'
  describe_process:
    - 'describe\b'
level_markers:
  causal:
    - 'because'
  normative:
    - 'should\b'
mode_markers:
  descriptive:
    - '\bis a\b'
scope_markers:
  boundary_extremes:
    - 'extreme'
  concrete_case:
    - 'for example'
  general_principle:
    - 'in general'
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(cfg.Domains) != 2 {
		t.Fatalf("domains: got %d, want 2", len(cfg.Domains))
	}
	// Declaration order is preserved — it breaks ranking ties.
	if cfg.Domains[0].Name != "physics" || cfg.Domains[1].Name != "biology" {
		t.Errorf("domain order: got %q, %q", cfg.Domains[0].Name, cfg.Domains[1].Name)
	}
	// Keywords are lower-cased at load.
	if cfg.Domains[0].Keywords[0] != "entropy" {
		t.Errorf("keyword not lowercased: %q", cfg.Domains[0].Keywords[0])
	}

	if len(cfg.Intent) != 2 || cfg.Intent[0].Label != "explain_mechanism" {
		t.Errorf("intent markers: got %+v", cfg.Intent)
	}
	// Patterns are compiled case-insensitively.
	if !cfg.Intent[0].Patterns[0].MatchString("EXPLAIN the result") {
		t.Error("pattern should match case-insensitively")
	}
}

func TestParseErrors(t *testing.T) {
	badPattern := `
domains:
  physics: [entropy]
intent_markers:
  explain_mechanism: ['([']
level_markers:
  causal: [because]
mode_markers:
  descriptive: [is]
scope_markers:
  concrete_case: [example]
`

	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"not-yaml", "domains: ["},
		{"missing-section", "domains:\n  physics: [entropy]\n"},
		{"bad-pattern", badPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("expected *ConfigError, got %T", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Domains) != 2 {
		t.Errorf("domains: got %d, want 2", len(cfg.Domains))
	}
}

func TestLoadShippedVocabulary(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "structural_vocab.yaml"))
	if err != nil {
		t.Fatalf("shipped vocabulary does not load: %v", err)
	}
	if len(cfg.Domains) == 0 || len(cfg.Scope) == 0 {
		t.Error("shipped vocabulary is missing tables")
	}
}

func TestWithDomain(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatal(err)
	}

	aug := cfg.WithDomain("q_entropy-1", []string{"Disorder", "microstates"})
	if len(aug.Domains) != len(cfg.Domains)+1 {
		t.Fatalf("augmented domains: got %d, want %d", len(aug.Domains), len(cfg.Domains)+1)
	}
	last := aug.Domains[len(aug.Domains)-1]
	if last.Name != "q_entropy-1" {
		t.Errorf("appended domain name: got %q", last.Name)
	}
	if last.Keywords[0] != "disorder" {
		t.Errorf("appended keywords not lowercased: %q", last.Keywords[0])
	}
	// Receiver untouched.
	if len(cfg.Domains) != 2 {
		t.Errorf("base config mutated: %d domains", len(cfg.Domains))
	}
}
