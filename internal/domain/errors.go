package domain

import "fmt"

// ExtractionError reports that dependencies could not be extracted from a
// source tree. It is fatal: no partial report is produced.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting dependencies from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// MalformedEdgeError reports a raw edge with an empty or blank endpoint.
type MalformedEdgeError struct {
	Index int
	Edge  RawEdge
}

func (e *MalformedEdgeError) Error() string {
	msg := fmt.Sprintf("malformed edge #%d (%q -> %q): empty endpoint", e.Index, e.Edge.From, e.Edge.To)
	if e.Edge.Source != "" {
		msg += fmt.Sprintf(" at %s:%d", e.Edge.Source, e.Edge.Line)
	}
	return msg
}

// ConfigError reports a rule document that cannot be used at all.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RuleConfigurationError reports a single unusable rule. Other rules are
// still evaluated.
type RuleConfigurationError struct {
	Rule  string
	Index int
	Err   error
}

func (e *RuleConfigurationError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleLabel(), e.Err)
}

func (e *RuleConfigurationError) Unwrap() error { return e.Err }

// RuleLabel names the rule, falling back to its position when unnamed.
func (e *RuleConfigurationError) RuleLabel() string {
	if e.Rule != "" {
		return e.Rule
	}
	return fmt.Sprintf("rules[%d]", e.Index)
}
