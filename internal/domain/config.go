package domain

import (
	"fmt"
	"strings"

	"github.com/abdidvp/archguard/internal/domain/pattern"
)

// Language names accepted in the languages list.
const (
	LanguageGo         = "go"
	LanguageTypeScript = "typescript"
	LanguageJavaScript = "javascript"
	LanguageJava       = "java"
	LanguageCSharp     = "csharp"
)

// ValidLanguages enumerates all languages an extractor exists for.
var ValidLanguages = []string{
	LanguageGo, LanguageTypeScript, LanguageJavaScript, LanguageJava, LanguageCSharp,
}

// ProjectConfig is the rule document loaded from .archguard.yaml.
type ProjectConfig struct {
	Layers        []LayerDef        `yaml:"layers"         json:"layers,omitempty"`
	Aliases       map[string]string `yaml:"aliases"        json:"aliases,omitempty"`
	CollapseIndex bool              `yaml:"collapse_index" json:"collapse_index,omitempty"`
	ExcludePaths  []string          `yaml:"exclude_paths"  json:"exclude_paths,omitempty"`
	Languages     []string          `yaml:"languages"      json:"languages,omitempty"`
	Rules         []Rule            `yaml:"rules"          json:"rules"`
}

// DefaultConfig is used when a project has no rule document: no layers and
// a single cycle rule.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		CollapseIndex: true,
		Rules: []Rule{{
			Name:     "no-circular",
			Kind:     RuleCircular,
			Severity: SeverityError,
			Because:  "circular dependencies make modules impossible to change in isolation",
		}},
	}
}

// LayerNames returns layer names in declaration order.
func (c ProjectConfig) LayerNames() []string {
	names := make([]string, len(c.Layers))
	for i, l := range c.Layers {
		names[i] = l.Name
	}
	return names
}

// Validate checks document-level structure. Problems confined to a single
// rule are not reported here; the engine isolates those.
func (c ProjectConfig) Validate() error {
	// 1. layers must be named, unique and carry compilable patterns
	seen := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return fmt.Errorf("layers[%d]: name is required", i)
		}
		if name == Unlayered {
			return fmt.Errorf("layers[%d]: %q is reserved", i, Unlayered)
		}
		if seen[name] {
			return fmt.Errorf("duplicate layer name %q", name)
		}
		seen[name] = true
		if len(l.Patterns) == 0 {
			return fmt.Errorf("layer %q has no patterns", name)
		}
		for _, p := range l.Patterns {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("layer %q has an empty pattern", name)
			}
			if _, err := pattern.Compile(p); err != nil {
				return fmt.Errorf("layer %q: %w", name, err)
			}
		}
	}

	// 2. alias prefixes must be non-empty
	for from := range c.Aliases {
		if strings.TrimSpace(from) == "" {
			return fmt.Errorf("aliases: empty prefix")
		}
	}

	// 3. languages must be known
	for _, lang := range c.Languages {
		if !isValidLanguage(lang) {
			return fmt.Errorf("unknown language %q (valid: %s)", lang, strings.Join(ValidLanguages, ", "))
		}
	}

	return nil
}

func isValidLanguage(lang string) bool {
	for _, l := range ValidLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
