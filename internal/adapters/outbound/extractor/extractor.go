// Package extractor turns a source tree into raw dependency edges.
//
// Each language is handled by a sourceParser keyed by file extension. The
// walker collects files first, files are parsed concurrently, and results are
// joined in walk order so identical trees always yield identical output.
package extractor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/abdidvp/archguard/internal/domain"
	"golang.org/x/sync/errgroup"
)

// sourceParser extracts edges and declarations from one file.
type sourceParser interface {
	language() string
	extensions() []string
	parse(rel string, src []byte) (fileResult, error)
}

type fileResult struct {
	edges []domain.RawEdge
	decls []domain.Declaration
}

// SourceExtractor implements domain.EdgeExtractor for Go, TypeScript,
// JavaScript, Java and C# trees.
type SourceExtractor struct {
	logger  *slog.Logger
	workers int
	cache   domain.CacheStore
}

// Option configures a SourceExtractor.
type Option func(*SourceExtractor)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *SourceExtractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers bounds concurrent file parsing.
func WithWorkers(n int) Option {
	return func(e *SourceExtractor) { e.workers = n }
}

// WithCache reuses parse results of unchanged files across runs.
func WithCache(store domain.CacheStore) Option {
	return func(e *SourceExtractor) { e.cache = store }
}

func New(opts ...Option) *SourceExtractor {
	e := &SourceExtractor{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// Extract walks root and parses every recognised source file. A file that
// cannot be read or parsed aborts the whole extraction.
func (e *SourceExtractor) Extract(ctx context.Context, root string, opts domain.ExtractOptions) (*domain.Extraction, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &domain.ExtractionError{Path: root, Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &domain.ExtractionError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.ExtractionError{Path: root, Err: fmt.Errorf("not a directory")}
	}

	start := time.Now()
	files, err := walk(ctx, absRoot, opts.ExcludePaths, e.logger)
	if err != nil {
		return nil, &domain.ExtractionError{Path: root, Err: err}
	}

	module := modulePath(absRoot)
	byExt := e.parsers(module, opts.Languages)
	prev := e.loadCache(absRoot, module)

	type job struct {
		rel    string
		parser sourceParser
	}
	var jobs []job
	for _, rel := range files {
		if p, ok := byExt[path.Ext(rel)]; ok {
			jobs = append(jobs, job{rel: rel, parser: p})
		}
	}

	results := make([]fileResult, len(jobs))
	hashes := make([]string, len(jobs))
	var hits atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(j.rel)))
			if err != nil {
				return err
			}
			sum := sha256.Sum256(src)
			hash := hex.EncodeToString(sum[:])
			if entry, ok := prev.Lookup(j.rel, hash); ok {
				results[i] = fileResult{edges: entry.Edges, decls: entry.Declarations}
				hashes[i] = hash
				hits.Add(1)
				return nil
			}
			res, err := j.parser.parse(j.rel, src)
			if err != nil {
				return fmt.Errorf("%s source: %w", j.parser.language(), err)
			}
			results[i] = res
			hashes[i] = hash
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &domain.ExtractionError{Path: root, Err: err}
	}

	out := &domain.Extraction{Root: absRoot, Files: len(jobs), Edges: []domain.RawEdge{}}
	for _, r := range results {
		out.Edges = append(out.Edges, r.edges...)
		out.Declarations = append(out.Declarations, r.decls...)
	}

	if e.cache != nil {
		next := domain.NewExtractionCache(module)
		for i, j := range jobs {
			if hashes[i] == "" {
				continue
			}
			next.Files[j.rel] = domain.FileCacheEntry{
				Hash:         hashes[i],
				Edges:        results[i].edges,
				Declarations: results[i].decls,
			}
		}
		if err := e.cache.Save(absRoot, next); err != nil {
			e.logger.Warn("saving extraction cache failed", "error", err)
		}
	}

	e.logger.Debug("source tree walked",
		"root", absRoot, "files", len(files), "parsed", len(jobs), "cached", hits.Load(),
		"edges", len(out.Edges), "elapsed", time.Since(start))
	return out, nil
}

// loadCache returns reusable entries, or nil when caching is off or the
// stored cache no longer applies. A cache that cannot be read is dropped.
func (e *SourceExtractor) loadCache(root, module string) *domain.ExtractionCache {
	if e.cache == nil {
		return nil
	}
	c, err := e.cache.Load(root)
	if err != nil {
		e.logger.Warn("discarding unreadable extraction cache", "error", err)
		if err := e.cache.Invalidate(root); err != nil {
			e.logger.Warn("removing extraction cache failed", "error", err)
		}
		return nil
	}
	if c == nil || c.IsInvalidated(module) {
		return nil
	}
	return c
}

// parsers returns the extension table for the enabled languages. An empty
// language list enables all of them.
func (e *SourceExtractor) parsers(module string, languages []string) map[string]sourceParser {
	all := []sourceParser{
		newGoParser(module),
		newScriptParser(domain.LanguageTypeScript, ".ts", ".tsx", ".mts", ".cts"),
		newScriptParser(domain.LanguageJavaScript, ".js", ".jsx", ".mjs", ".cjs"),
		javaParser{},
		csharpParser{},
	}

	enabled := make(map[string]bool, len(languages))
	for _, l := range languages {
		enabled[l] = true
	}

	byExt := make(map[string]sourceParser)
	for _, p := range all {
		if len(enabled) > 0 && !enabled[p.language()] {
			continue
		}
		for _, ext := range p.extensions() {
			byExt[ext] = p
		}
	}
	return byExt
}

// lineAt returns the 1-based line of offset in src.
func lineAt(src []byte, offset int) int {
	line := 1
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}
