package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity of a rule and of the violations it produces.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ParseSeverity accepts "error", "warning" and the "warn" shorthand.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	default:
		return "", fmt.Errorf("unknown severity %q (valid: error, warning)", s)
	}
}

// Rank orders severities; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// UnmarshalYAML normalizes the "warn" shorthand.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*s = ""
		return nil
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		// Kept as written; Rule.Validate rejects it.
		*s = Severity(raw)
		return nil
	}
	*s = parsed
	return nil
}

// RuleKind selects the evaluation strategy of a rule.
type RuleKind string

const (
	RuleForbidden    RuleKind = "forbidden"
	RuleCircular     RuleKind = "circular"
	RuleNaming       RuleKind = "naming"
	RuleReachThrough RuleKind = "reach-through"
)

// ValidRuleKinds enumerates all rule kinds.
var ValidRuleKinds = []RuleKind{RuleForbidden, RuleCircular, RuleNaming, RuleReachThrough}

// Selector picks a set of modules. All present clauses must hold.
// In YAML a plain string is shorthand for {path: <string>}.
type Selector struct {
	Layers  []string `yaml:"layers"   json:"layers,omitempty"`
	Path    string   `yaml:"path"     json:"path,omitempty"`
	PathNot string   `yaml:"path_not" json:"path_not,omitempty"`
}

// UnmarshalYAML accepts either a scalar pattern or a mapping.
func (s *Selector) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var p string
		if err := value.Decode(&p); err != nil {
			return err
		}
		*s = Selector{Path: p}
		return nil
	}
	type plain Selector
	var out plain
	if err := value.Decode(&out); err != nil {
		return err
	}
	*s = Selector(out)
	return nil
}

// IsEmpty reports whether the selector has no clauses.
func (s Selector) IsEmpty() bool {
	return len(s.Layers) == 0 && s.Path == "" && s.PathNot == ""
}

// Equal reports whether two selectors have identical clauses.
func (s Selector) Equal(o Selector) bool {
	if s.Path != o.Path || s.PathNot != o.PathNot || len(s.Layers) != len(o.Layers) {
		return false
	}
	for i := range s.Layers {
		if s.Layers[i] != o.Layers[i] {
			return false
		}
	}
	return true
}

func (s Selector) String() string {
	var parts []string
	if len(s.Layers) > 0 {
		parts = append(parts, "layers "+strings.Join(s.Layers, "|"))
	}
	if s.Path != "" {
		parts = append(parts, fmt.Sprintf("path %q", s.Path))
	}
	if s.PathNot != "" {
		parts = append(parts, fmt.Sprintf("not %q", s.PathNot))
	}
	if len(parts) == 0 {
		return "any module"
	}
	return strings.Join(parts, " and ")
}

// NamingSpec holds the checks of a naming rule.
type NamingSpec struct {
	Prefix   string `yaml:"prefix"    json:"prefix,omitempty"`
	Suffix   string `yaml:"suffix"    json:"suffix,omitempty"`
	Pattern  string `yaml:"pattern"   json:"pattern,omitempty"`
	Style    string `yaml:"style"     json:"style,omitempty"`
	MinWords int    `yaml:"min_words" json:"min_words,omitempty"`
}

// Naming styles understood by NamingSpec.Style.
const (
	StylePascal = "pascal"
	StyleCamel  = "camel"
)

// IsEmpty reports whether the spec carries no check at all.
func (n NamingSpec) IsEmpty() bool {
	return n.Prefix == "" && n.Suffix == "" && n.Pattern == "" && n.Style == "" && n.MinWords == 0
}

// Rule is a declarative architectural constraint.
type Rule struct {
	Name       string      `yaml:"name"        json:"name"`
	Kind       RuleKind    `yaml:"kind"        json:"kind"`
	Severity   Severity    `yaml:"severity"    json:"severity"`
	From       Selector    `yaml:"from"        json:"from"`
	To         *Selector   `yaml:"to"          json:"to,omitempty"`
	Via        *Selector   `yaml:"via"         json:"via,omitempty"`
	DirectOnly *bool       `yaml:"direct_only" json:"direct_only,omitempty"`
	TargetKind ModuleKind  `yaml:"target_kind" json:"target_kind,omitempty"`
	Naming     *NamingSpec `yaml:"naming"      json:"naming,omitempty"`
	Because    string      `yaml:"because"     json:"because,omitempty"`
}

// IsDirectOnly defaults to true when direct_only is absent.
func (r Rule) IsDirectOnly() bool {
	return r.DirectOnly == nil || *r.DirectOnly
}

// EffectiveSeverity returns the rule severity, error when unset.
func (r Rule) EffectiveSeverity() Severity {
	if r.Severity == "" {
		return SeverityError
	}
	return r.Severity
}

// Validate checks the rule's shape. Pattern syntax is checked by the engine
// when the selectors are compiled.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rule name is required")
	}
	if r.EffectiveSeverity().Rank() == 0 {
		return fmt.Errorf("unknown severity %q (valid: error, warning)", r.Severity)
	}

	switch r.Kind {
	case RuleForbidden:
		if r.To == nil || r.To.IsEmpty() {
			return fmt.Errorf("forbidden rule requires a to selector")
		}
	case RuleReachThrough:
		if r.To == nil || r.To.IsEmpty() {
			return fmt.Errorf("reach-through rule requires a to selector")
		}
		if r.Via == nil || r.Via.IsEmpty() {
			return fmt.Errorf("reach-through rule requires a via selector")
		}
		if r.Via.Equal(*r.To) {
			return fmt.Errorf("via and to select the same modules")
		}
	case RuleNaming:
		if r.Naming == nil || r.Naming.IsEmpty() {
			return fmt.Errorf("naming rule requires at least one naming check")
		}
		if r.TargetKind != "" && !isValidModuleKind(r.TargetKind) {
			return fmt.Errorf("unknown target_kind %q", r.TargetKind)
		}
		if r.Naming.MinWords < 0 {
			return fmt.Errorf("naming.min_words must not be negative")
		}
		switch r.Naming.Style {
		case "", StylePascal, StyleCamel:
		default:
			return fmt.Errorf("unknown naming.style %q (valid: pascal, camel)", r.Naming.Style)
		}
	case RuleCircular:
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}

func isValidModuleKind(k ModuleKind) bool {
	for _, v := range ValidModuleKinds {
		if v == k {
			return true
		}
	}
	return false
}
