package domain

import (
	"path"
	"strings"
)

// Unlayered is the layer tag of modules that matched no layer pattern.
const Unlayered = "unlayered"

// ModuleKind classifies what a module identifier denotes.
type ModuleKind string

const (
	KindFile      ModuleKind = "file"
	KindPackage   ModuleKind = "package"
	KindInterface ModuleKind = "interface"
	KindClass     ModuleKind = "class"
	KindStruct    ModuleKind = "struct"
	KindType      ModuleKind = "type"
)

// ValidModuleKinds enumerates the kinds a naming rule may target.
var ValidModuleKinds = []ModuleKind{
	KindFile, KindPackage, KindInterface, KindClass, KindStruct, KindType,
}

// Module is a node of the dependency graph. It is never mutated after the
// graph is built.
type Module struct {
	ID    string     `json:"id"`
	Layer string     `json:"layer"`
	Kind  ModuleKind `json:"kind,omitempty"`
}

var sourceExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".mts": true, ".cts": true,
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".go": true, ".java": true, ".cs": true,
}

// IsSourceExtension reports whether ext (with leading dot) is a source file
// extension the extractors understand.
func IsSourceExtension(ext string) bool {
	return sourceExtensions[ext]
}

// Name returns the last identifier segment of the module id, so
// "src/domain/user.ts", "com.acme.domain.User" and "Acme::Domain::User"
// yield "user", "User" and "User".
func (m Module) Name() string {
	id := strings.TrimRight(m.ID, "/")
	if ext := path.Ext(id); IsSourceExtension(ext) {
		id = strings.TrimSuffix(id, ext)
	}
	cut := -1
	for _, sep := range []string{"/", ".", "::", "\\", "#"} {
		if i := strings.LastIndex(id, sep); i >= 0 && i+len(sep) > cut {
			cut = i + len(sep)
		}
	}
	if cut < 0 {
		return id
	}
	return id[cut:]
}

// RawEdge is a dependency pair as emitted by an extractor, before any
// normalization.
type RawEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Source string `json:"source,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// Declaration announces a module and its kind independently of edges, so
// types that nobody imports can still be checked by naming rules.
type Declaration struct {
	ID   string     `json:"id"`
	Kind ModuleKind `json:"kind"`
}

// Edge is a normalized, deduplicated dependency between two modules.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// LayerDef names a layer and the patterns that place modules in it.
type LayerDef struct {
	Name     string   `yaml:"name"     json:"name"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// EntityType identifies what a violation points at.
type EntityType string

const (
	EntityEdge   EntityType = "edge"
	EntityPath   EntityType = "path"
	EntityCycle  EntityType = "cycle"
	EntityModule EntityType = "module"
	EntityRule   EntityType = "rule"
)

// Violation is one detected breach of a rule.
type Violation struct {
	Rule     string     `json:"rule"`
	Kind     RuleKind   `json:"kind"`
	Severity Severity   `json:"severity"`
	Entity   EntityType `json:"entity"`
	Modules  []string   `json:"modules,omitempty"`
	Message  string     `json:"message"`
	Because  string     `json:"because,omitempty"`
}

// EntityID renders the offending entity as a single sortable string.
func (v Violation) EntityID() string {
	if v.Entity == EntityRule || len(v.Modules) == 0 {
		return v.Rule
	}
	return strings.Join(v.Modules, " -> ")
}

// Key identifies a violation by all of its fields.
func (v Violation) Key() string {
	return strings.Join([]string{
		v.Rule, string(v.Kind), string(v.Severity), string(v.Entity),
		strings.Join(v.Modules, "\x1f"), v.Message, v.Because,
	}, "\x00")
}

// Summary counts violations per severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Total    int `json:"total"`
}

// Report is the outcome of a check run. It carries no timestamps so that
// identical inputs render identical bytes.
type Report struct {
	Passed     bool        `json:"passed"`
	Summary    Summary     `json:"summary"`
	Modules    int         `json:"modules"`
	Edges      int         `json:"edges"`
	Violations []Violation `json:"violations"`
}
