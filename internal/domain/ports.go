package domain

import "context"

// ExtractOptions narrows what an extractor looks at.
type ExtractOptions struct {
	ExcludePaths []string
	Languages    []string
}

// Extraction is the raw output of an extractor.
type Extraction struct {
	Root         string        `json:"root"`
	Files        int           `json:"files"`
	Edges        []RawEdge     `json:"edges"`
	Declarations []Declaration `json:"declarations,omitempty"`
}

// EdgeExtractor produces raw dependency edges for a project. Implementations
// must stop and return ctx.Err() once the context is done.
type EdgeExtractor interface {
	Extract(ctx context.Context, root string, opts ExtractOptions) (*Extraction, error)
}

// ConfigLoader loads the rule document. An empty explicitPath means the
// default location inside projectPath.
type ConfigLoader interface {
	Load(projectPath, explicitPath string) (ProjectConfig, error)
}

// RunEntry is one recorded check run.
type RunEntry struct {
	RunID      string `json:"run_id"`
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Passed     bool   `json:"passed"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
	Modules    int    `json:"modules"`
	Edges      int    `json:"edges"`
}

// RunHistory persists check runs.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo reads version control metadata.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// CacheStore persists the extraction cache of a project.
type CacheStore interface {
	Load(projectPath string) (*ExtractionCache, error)
	Save(projectPath string, cache *ExtractionCache) error
	Invalidate(projectPath string) error
}
