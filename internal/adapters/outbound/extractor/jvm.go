package extractor

import (
	"path"
	"regexp"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
)

var (
	javaPackageRe = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	javaImportRe  = regexp.MustCompile(`(?m)^\s*import\s+(static\s+)?([\w.]+?)(\.\*)?\s*;`)
	javaTypeRe    = regexp.MustCompile(`(?m)^\s*(?:(?:public|protected|private|abstract|final|static|sealed|non-sealed|strictfp)\s+)*(@interface|interface|class|enum|record)\s+(\w+)`)

	csNamespaceRe = regexp.MustCompile(`(?m)^\s*namespace\s+([\w.]+)\s*[;{]?`)
	csUsingRe     = regexp.MustCompile(`(?m)^\s*(?:global\s+)?using\s+(?:static\s+)?(?:\w+\s*=\s*)?([\w.]+)\s*;`)
	csTypeRe      = regexp.MustCompile(`(?m)^\s*(?:(?:public|internal|private|protected|static|sealed|abstract|partial|readonly|file|unsafe|new|ref)\s+)*(interface|class|struct|record)\s+(\w+)`)
)

// javaParser maps each file to its fully qualified top-level type.
type javaParser struct{}

func (javaParser) language() string     { return domain.LanguageJava }
func (javaParser) extensions() []string { return []string{".java"} }

func (javaParser) parse(rel string, src []byte) (fileResult, error) {
	pkg := ""
	if m := javaPackageRe.FindSubmatch(src); m != nil {
		pkg = string(m[1])
	}
	from := qualify(pkg, strings.TrimSuffix(path.Base(rel), ".java"))

	res := fileResult{}
	for _, m := range javaImportRe.FindAllSubmatchIndex(src, -1) {
		target := string(src[m[4]:m[5]])
		isStatic := m[2] >= 0
		isWildcard := m[6] >= 0
		if isStatic && !isWildcard {
			// import static a.b.Type.member
			if i := strings.LastIndex(target, "."); i > 0 {
				target = target[:i]
			}
		}
		res.edges = append(res.edges, domain.RawEdge{
			From:   from,
			To:     target,
			Source: rel,
			Line:   lineAt(src, m[0]),
		})
	}

	for _, m := range javaTypeRe.FindAllSubmatch(src, -1) {
		res.decls = append(res.decls, domain.Declaration{
			ID:   qualify(pkg, string(m[2])),
			Kind: declKind(string(m[1])),
		})
	}
	return res, nil
}

// csharpParser maps each file to namespace + file name. Types declared in
// the file are emitted under their namespace.
type csharpParser struct{}

func (csharpParser) language() string     { return domain.LanguageCSharp }
func (csharpParser) extensions() []string { return []string{".cs"} }

func (csharpParser) parse(rel string, src []byte) (fileResult, error) {
	ns := ""
	if m := csNamespaceRe.FindSubmatch(src); m != nil {
		ns = string(m[1])
	}
	from := qualify(ns, strings.TrimSuffix(path.Base(rel), ".cs"))

	res := fileResult{}
	for _, m := range csUsingRe.FindAllSubmatchIndex(src, -1) {
		res.edges = append(res.edges, domain.RawEdge{
			From:   from,
			To:     string(src[m[2]:m[3]]),
			Source: rel,
			Line:   lineAt(src, m[0]),
		})
	}

	for _, m := range csTypeRe.FindAllSubmatch(src, -1) {
		res.decls = append(res.decls, domain.Declaration{
			ID:   qualify(ns, string(m[2])),
			Kind: declKind(string(m[1])),
		})
	}
	return res, nil
}

func qualify(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "." + name
}

func declKind(keyword string) domain.ModuleKind {
	switch keyword {
	case "interface", "@interface":
		return domain.KindInterface
	case "class":
		return domain.KindClass
	case "struct":
		return domain.KindStruct
	default:
		return domain.KindType
	}
}
