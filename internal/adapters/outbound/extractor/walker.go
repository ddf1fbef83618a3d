package extractor

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".archguard":   true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// maxFileSize caps what gets read; larger files are generated or vendored.
const maxFileSize = 1 << 20

// ignoreRules holds the root matcher (exclude_paths plus the root
// .gitignore) and one matcher per nested directory carrying a .gitignore.
type ignoreRules struct {
	root   *ignore.GitIgnore
	nested map[string]*ignore.GitIgnore
}

func newIgnoreRules(root string, excludePaths []string) *ignoreRules {
	lines := append([]string(nil), excludePaths...)
	lines = append(lines, readIgnoreFile(root)...)
	return &ignoreRules{
		root:   ignore.CompileIgnoreLines(lines...),
		nested: make(map[string]*ignore.GitIgnore),
	}
}

func readIgnoreFile(dir string) []string {
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

// enter loads the .gitignore of a nested directory, if any.
func (r *ignoreRules) enter(absDir, rel string) {
	if lines := readIgnoreFile(absDir); len(lines) > 0 {
		r.nested[rel] = ignore.CompileIgnoreLines(lines...)
	}
}

// ignored checks rel against the root rules and every ancestor's
// .gitignore, each relative to the directory that declares it.
func (r *ignoreRules) ignored(rel string, dir bool) bool {
	candidate := rel
	if dir {
		candidate += "/"
	}
	if r.root.MatchesPath(candidate) {
		return true
	}
	for d := path.Dir(rel); d != "."; d = path.Dir(d) {
		if m := r.nested[d]; m != nil && m.MatchesPath(strings.TrimPrefix(candidate, d+"/")) {
			return true
		}
	}
	return false
}

// walk returns slash-separated paths, relative to root, of every regular
// file that survives the skip list, exclude_paths and .gitignore files.
func walk(ctx context.Context, root string, excludePaths []string, logger *slog.Logger) ([]string, error) {
	rules := newIgnoreRules(root, excludePaths)

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDirs[d.Name()] || rules.ignored(rel, true) {
				return filepath.SkipDir
			}
			rules.enter(p, rel)
			return nil
		}
		if !d.Type().IsRegular() || rules.ignored(rel, false) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxFileSize {
			logger.Debug("skipping oversized file", "file", rel, "size", info.Size())
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
