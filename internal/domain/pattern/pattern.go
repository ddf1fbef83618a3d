// Package pattern compiles the identifier patterns used by layer definitions
// and rule selectors.
//
// A pattern is a regular expression unless it carries one of the prefixes
// below, or looks like an ArchUnit package pattern ("..domain..").
//
//	regex:^src/domain/       regular expression (default)
//	glob:src/**/domain/**    path glob, '*' stops at '/'
//	package:..domain..       ArchUnit package pattern
//	namespace:Acme.Domain    namespace and all nested namespaces/types
//	exact:src/main           literal identifier
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	prefixRegex     = "regex:"
	prefixGlob      = "glob:"
	prefixPackage   = "package:"
	prefixNamespace = "namespace:"
	prefixExact     = "exact:"
)

// DefaultCacheSize bounds the number of compiled patterns kept by a Compiler.
const DefaultCacheSize = 512

// Matcher tests module identifiers.
type Matcher interface {
	Match(id string) bool
	String() string
}

// Compiler compiles patterns and memoizes the results. It is safe for
// concurrent use.
type Compiler struct {
	cache *lru.Cache[string, Matcher]
}

// NewCompiler creates a Compiler holding at most size compiled patterns.
func NewCompiler(size int) *Compiler {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Matcher](size)
	if err != nil {
		panic(fmt.Sprintf("pattern: creating cache: %v", err))
	}
	return &Compiler{cache: cache}
}

// Compile returns the matcher for expr.
func (c *Compiler) Compile(expr string) (Matcher, error) {
	if m, ok := c.cache.Get(expr); ok {
		return m, nil
	}
	m, err := compile(expr)
	if err != nil {
		return nil, err
	}
	c.cache.Add(expr, m)
	return m, nil
}

// Len returns the number of cached matchers.
func (c *Compiler) Len() int {
	return c.cache.Len()
}

var defaultCompiler = NewCompiler(DefaultCacheSize)

// Compile compiles expr using a shared package-level cache.
func Compile(expr string) (Matcher, error) {
	return defaultCompiler.Compile(expr)
}

func compile(expr string) (Matcher, error) {
	switch {
	case strings.HasPrefix(expr, prefixRegex):
		return compileRegex(expr, strings.TrimPrefix(expr, prefixRegex))
	case strings.HasPrefix(expr, prefixGlob):
		g, err := glob.Compile(strings.TrimPrefix(expr, prefixGlob), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", expr, err)
		}
		return &globMatcher{expr: expr, g: g}, nil
	case strings.HasPrefix(expr, prefixPackage):
		return compileRegex(expr, packageRegex(strings.TrimPrefix(expr, prefixPackage)))
	case strings.HasPrefix(expr, prefixNamespace):
		ns := strings.TrimSpace(strings.TrimPrefix(expr, prefixNamespace))
		if ns == "" {
			return nil, fmt.Errorf("invalid namespace pattern %q: empty namespace", expr)
		}
		return &namespaceMatcher{expr: expr, ns: ns}, nil
	case strings.HasPrefix(expr, prefixExact):
		return &exactMatcher{expr: expr, id: strings.TrimPrefix(expr, prefixExact)}, nil
	case strings.HasPrefix(expr, "..") || strings.HasSuffix(expr, ".."):
		return compileRegex(expr, packageRegex(expr))
	default:
		return compileRegex(expr, expr)
	}
}

func compileRegex(expr, source string) (Matcher, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &regexMatcher{expr: expr, re: re}, nil
}

// packageRegex translates an ArchUnit package pattern. ".." matches any
// number of package segments, '.' matches either '.' or '/', and '*' matches
// within one segment.
func packageRegex(p string) string {
	parts := strings.Split(p, "..")
	var b strings.Builder
	b.WriteString("^")
	for i, part := range parts {
		if i > 0 {
			switch {
			case i == 1 && parts[0] == "":
				b.WriteString(`(?:.*[./])?`)
			case i == len(parts)-1 && part == "":
				b.WriteString(`(?:[./].*)?`)
			default:
				b.WriteString(`[./](?:.*[./])?`)
			}
		}
		for _, r := range part {
			switch r {
			case '.':
				b.WriteString(`[./]`)
			case '*':
				b.WriteString(`[^./]*`)
			default:
				b.WriteString(regexp.QuoteMeta(string(r)))
			}
		}
	}
	b.WriteString("$")
	return b.String()
}

type regexMatcher struct {
	expr string
	re   *regexp.Regexp
}

func (m *regexMatcher) Match(id string) bool { return m.re.MatchString(id) }
func (m *regexMatcher) String() string       { return m.expr }

type globMatcher struct {
	expr string
	g    glob.Glob
}

func (m *globMatcher) Match(id string) bool { return m.g.Match(id) }
func (m *globMatcher) String() string       { return m.expr }

type namespaceMatcher struct {
	expr string
	ns   string
}

func (m *namespaceMatcher) Match(id string) bool {
	if id == m.ns {
		return true
	}
	for _, sep := range []string{".", "/", "::"} {
		if strings.HasPrefix(id, m.ns+sep) {
			return true
		}
	}
	return false
}

func (m *namespaceMatcher) String() string { return m.expr }

type exactMatcher struct {
	expr string
	id   string
}

func (m *exactMatcher) Match(id string) bool { return id == m.id }
func (m *exactMatcher) String() string       { return m.expr }
