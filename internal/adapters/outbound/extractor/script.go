package extractor

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

var (
	importFromRe    = regexp.MustCompile(`(?m)^\s*import\s+(?:type\s+)?(?:[\w$*{}\s,]+?\s+from\s+)?['"]([^'"\n]+)['"]`)
	exportFromRe    = regexp.MustCompile(`(?m)^\s*export\s+(?:type\s+)?(?:\*(?:\s+as\s+[\w$]+)?|\{[^}]*\})\s*from\s+['"]([^'"\n]+)['"]`)
	requireRe       = regexp.MustCompile(`\brequire\(\s*['"]([^'"\n]+)['"]\s*\)`)
	dynamicImportRe = regexp.MustCompile(`\bimport\(\s*['"]([^'"\n]+)['"]\s*\)`)
	scriptTypeRe    = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:declare\s+)?(?:abstract\s+)?(interface|class)\s+([A-Za-z_$][\w$]*)`)
)

// scriptParser handles TypeScript and JavaScript. Module ids are
// root-relative paths without extension.
type scriptParser struct {
	lang string
	exts []string
}

func newScriptParser(lang string, exts ...string) scriptParser {
	return scriptParser{lang: lang, exts: exts}
}

func (p scriptParser) language() string     { return p.lang }
func (p scriptParser) extensions() []string { return p.exts }

func (p scriptParser) parse(rel string, src []byte) (fileResult, error) {
	from := stripSourceExt(rel)
	res := fileResult{
		decls: []domain.Declaration{{ID: from, Kind: domain.KindFile}},
	}

	type hit struct {
		spec   string
		offset int
	}
	var hits []hit
	for _, re := range []*regexp.Regexp{importFromRe, exportFromRe, requireRe, dynamicImportRe} {
		for _, m := range re.FindAllSubmatchIndex(src, -1) {
			hits = append(hits, hit{spec: string(src[m[2]:m[3]]), offset: m[2]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].offset < hits[j].offset })

	for _, h := range hits {
		res.edges = append(res.edges, domain.RawEdge{
			From:   from,
			To:     resolveSpecifier(rel, h.spec),
			Source: rel,
			Line:   lineAt(src, h.offset),
		})
	}

	for _, m := range scriptTypeRe.FindAllSubmatch(src, -1) {
		kind := domain.KindClass
		if string(m[1]) == "interface" {
			kind = domain.KindInterface
		}
		res.decls = append(res.decls, domain.Declaration{ID: from + "." + string(m[2]), Kind: kind})
	}
	return res, nil
}

// resolveSpecifier makes relative specifiers root-relative. Bare specifiers
// (packages, aliases) are returned unchanged.
func resolveSpecifier(rel, spec string) string {
	if spec != "." && spec != ".." && !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return spec
	}
	return stripSourceExt(path.Join(path.Dir(rel), spec))
}

func stripSourceExt(p string) string {
	if ext := path.Ext(p); domain.IsSourceExtension(ext) {
		return strings.TrimSuffix(p, ext)
	}
	return p
}
