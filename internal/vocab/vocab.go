// Package vocab loads and holds the static scoring vocabulary: domain
// keyword tables and the intent/level/mode/scope marker tables. A Config is
// immutable after load and passed explicitly into every scoring call —
// there is no package-level cache.
package vocab

// #region imports
import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region types

// Domain is one topical category: a name and its literal keywords.
// Declaration order matters — it is the tie-break during domain ranking.
type Domain struct {
	Name     string
	Keywords []string
}

// Marker is one label on an axis plus its compiled detection patterns.
type Marker struct {
	Label    string
	Patterns []*regexp.Regexp
}

// Config is the full static vocabulary. Read-only after Load.
type Config struct {
	Domains []Domain
	Intent  []Marker
	Level   []Marker
	Mode    []Marker
	Scope   []Marker
}

// #endregion

// #region config-error

// ConfigError reports an unusable vocabulary resource. It is fatal: the
// loader never substitutes defaults for a broken config.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vocab config %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// #endregion

// #region raw-yaml

// orderedTable preserves YAML mapping order, which map[string][]string
// would destroy.
type orderedTable []tableEntry

type tableEntry struct {
	key    string
	values []string
}

func (t *orderedTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping, got %s", node.Tag)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("table key: %w", err)
		}
		var values []string
		if err := node.Content[i+1].Decode(&values); err != nil {
			return fmt.Errorf("table %q: %w", key, err)
		}
		*t = append(*t, tableEntry{key: key, values: values})
	}
	return nil
}

type rawConfig struct {
	Domains       orderedTable `yaml:"domains"`
	IntentMarkers orderedTable `yaml:"intent_markers"`
	LevelMarkers  orderedTable `yaml:"level_markers"`
	ModeMarkers   orderedTable `yaml:"mode_markers"`
	ScopeMarkers  orderedTable `yaml:"scope_markers"`
}

// #endregion

// #region load

// Load reads and parses a YAML vocabulary file. Any missing file, malformed
// structure, empty required table, or invalid pattern yields a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			return nil, &ConfigError{Source: path, Err: ce.Err}
		}
		return nil, &ConfigError{Source: path, Err: err}
	}
	return cfg, nil
}

// Parse builds a Config from raw YAML bytes, compiling all marker patterns
// case-insensitively up front so the scoring hot path never sees a pattern
// error.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Source: "inline", Err: err}
	}

	required := []struct {
		name  string
		table orderedTable
	}{
		{"domains", raw.Domains},
		{"intent_markers", raw.IntentMarkers},
		{"level_markers", raw.LevelMarkers},
		{"mode_markers", raw.ModeMarkers},
		{"scope_markers", raw.ScopeMarkers},
	}
	for _, r := range required {
		if len(r.table) == 0 {
			return nil, &ConfigError{Source: "inline", Err: fmt.Errorf("missing or empty section %q", r.name)}
		}
	}

	cfg := &Config{}
	for _, e := range raw.Domains {
		kws := make([]string, len(e.values))
		for i, kw := range e.values {
			kws[i] = strings.ToLower(kw)
		}
		cfg.Domains = append(cfg.Domains, Domain{Name: e.key, Keywords: kws})
	}

	var err error
	if cfg.Intent, err = compileTable("intent_markers", raw.IntentMarkers); err != nil {
		return nil, err
	}
	if cfg.Level, err = compileTable("level_markers", raw.LevelMarkers); err != nil {
		return nil, err
	}
	if cfg.Mode, err = compileTable("mode_markers", raw.ModeMarkers); err != nil {
		return nil, err
	}
	if cfg.Scope, err = compileTable("scope_markers", raw.ScopeMarkers); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileTable(section string, t orderedTable) ([]Marker, error) {
	var markers []Marker
	for _, e := range t {
		m := Marker{Label: e.key}
		for _, p := range e.values {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, &ConfigError{
					Source: "inline",
					Err:    fmt.Errorf("%s/%s: bad pattern %q: %w", section, e.key, p, err),
				}
			}
			m.Patterns = append(m.Patterns, re)
		}
		markers = append(markers, m)
	}
	return markers, nil
}

// #endregion

// #region with-domain

// WithDomain returns a shallow copy of the config with one extra domain
// appended after all declared domains. The receiver is not modified.
func (c *Config) WithDomain(name string, keywords []string) *Config {
	out := *c
	out.Domains = make([]Domain, 0, len(c.Domains)+1)
	out.Domains = append(out.Domains, c.Domains...)

	kws := make([]string, len(keywords))
	for i, kw := range keywords {
		kws[i] = strings.ToLower(kw)
	}
	out.Domains = append(out.Domains, Domain{Name: name, Keywords: kws})
	return &out
}

// #endregion
