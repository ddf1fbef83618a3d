package extractor

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abdidvp/archguard/internal/domain"
	"golang.org/x/mod/modfile"
)

// goParser maps a Go file to its package directory. Imports inside the
// module are made module-relative; everything else keeps its import path.
type goParser struct {
	module string
}

func newGoParser(module string) goParser { return goParser{module: module} }

func (goParser) language() string     { return domain.LanguageGo }
func (goParser) extensions() []string { return []string{".go"} }

func (p goParser) parse(rel string, src []byte) (fileResult, error) {
	if strings.HasSuffix(rel, "_test.go") {
		return fileResult{}, nil
	}

	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, rel, src, goparser.SkipObjectResolution)
	if err != nil {
		return fileResult{}, fmt.Errorf("parsing %s: %w", rel, err)
	}

	pkg := path.Dir(rel)
	res := fileResult{
		decls: []domain.Declaration{{ID: pkg, Kind: domain.KindPackage}},
	}

	for _, imp := range file.Imports {
		target, err := strconv.Unquote(imp.Path.Value)
		if err != nil || target == "C" {
			continue
		}
		res.edges = append(res.edges, domain.RawEdge{
			From:   pkg,
			To:     p.resolve(target),
			Source: rel,
			Line:   fset.Position(imp.Pos()).Line,
		})
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			kind := domain.KindType
			switch ts.Type.(type) {
			case *ast.StructType:
				kind = domain.KindStruct
			case *ast.InterfaceType:
				kind = domain.KindInterface
			}
			res.decls = append(res.decls, domain.Declaration{ID: pkg + "." + ts.Name.Name, Kind: kind})
		}
	}
	return res, nil
}

func (p goParser) resolve(importPath string) string {
	if p.module == "" {
		return importPath
	}
	if importPath == p.module {
		return "."
	}
	if rest, ok := strings.CutPrefix(importPath, p.module+"/"); ok {
		return rest
	}
	return importPath
}

// modulePath reads the module path from root/go.mod, or "" without one.
func modulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}
