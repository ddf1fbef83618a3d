package domain

// ExtractionCacheVersion changes whenever parser output changes shape.
const ExtractionCacheVersion = 1

// FileCacheEntry is what one file produced at a given content hash.
type FileCacheEntry struct {
	Hash         string        `json:"hash"`
	Edges        []RawEdge     `json:"edges,omitempty"`
	Declarations []Declaration `json:"declarations,omitempty"`
}

// ExtractionCache keeps per-file parse results between runs so unchanged
// files are not parsed again.
type ExtractionCache struct {
	Version    int                       `json:"version"`
	ModulePath string                    `json:"module_path,omitempty"`
	Files      map[string]FileCacheEntry `json:"files"`
}

// NewExtractionCache returns an empty cache for the current format.
func NewExtractionCache(modulePath string) *ExtractionCache {
	return &ExtractionCache{
		Version:    ExtractionCacheVersion,
		ModulePath: modulePath,
		Files:      make(map[string]FileCacheEntry),
	}
}

// IsInvalidated reports whether the entries were produced under different
// conditions. Go import resolution depends on the module path.
func (c *ExtractionCache) IsInvalidated(modulePath string) bool {
	return c.Version != ExtractionCacheVersion || c.ModulePath != modulePath
}

// Lookup returns the entry for rel if its content hash still matches.
func (c *ExtractionCache) Lookup(rel, hash string) (FileCacheEntry, bool) {
	if c == nil {
		return FileCacheEntry{}, false
	}
	e, ok := c.Files[rel]
	if !ok || e.Hash != hash {
		return FileCacheEntry{}, false
	}
	return e, true
}
