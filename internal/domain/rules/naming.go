package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/pattern"
)

func evalNaming(ec *evalContext, r domain.Rule) ([]domain.Violation, error) {
	from, err := ec.engine.compileSelector(r.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	spec := *r.Naming
	var nameRe pattern.Matcher
	if spec.Pattern != "" {
		nameRe, err = ec.engine.compiler.Compile(regexPrefix + spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("naming.pattern: %w", err)
		}
	}

	var out []domain.Violation
	for _, m := range ec.g.Modules() {
		if r.TargetKind != "" && m.Kind != r.TargetKind {
			continue
		}
		if !from.matches(m) {
			continue
		}
		problems := nameProblems(m.Name(), spec, nameRe)
		if len(problems) == 0 {
			continue
		}
		label := string(m.Kind)
		if label == "" {
			label = "module"
		}
		msg := fmt.Sprintf("%s %s: name %q %s", label, m.ID, m.Name(), strings.Join(problems, "; "))
		out = append(out, newViolation(r, domain.EntityModule, []string{m.ID}, msg))
	}
	return out, nil
}

func nameProblems(name string, spec domain.NamingSpec, nameRe pattern.Matcher) []string {
	var problems []string
	if spec.Prefix != "" && !strings.HasPrefix(name, spec.Prefix) {
		problems = append(problems, fmt.Sprintf("must start with %q", spec.Prefix))
	}
	if spec.Suffix != "" && !strings.HasSuffix(name, spec.Suffix) {
		problems = append(problems, fmt.Sprintf("must end with %q", spec.Suffix))
	}
	if nameRe != nil && !nameRe.Match(name) {
		problems = append(problems, fmt.Sprintf("must match %s", strings.TrimPrefix(nameRe.String(), regexPrefix)))
	}
	switch spec.Style {
	case domain.StylePascal:
		if !hasCase(name, unicode.IsUpper) {
			problems = append(problems, "must be PascalCase")
		}
	case domain.StyleCamel:
		if !hasCase(name, unicode.IsLower) {
			problems = append(problems, "must be camelCase")
		}
	}
	if spec.MinWords > 0 {
		if n := countWords(name); n < spec.MinWords {
			problems = append(problems, fmt.Sprintf("must have at least %d words (has %d)", spec.MinWords, n))
		}
	}
	return problems
}

// hasCase checks the first rune with first and rejects separators, which
// neither PascalCase nor camelCase allow.
func hasCase(name string, first func(rune) bool) bool {
	if name == "" || strings.ContainsAny(name, "_- ") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return first(r)
}

func countWords(name string) int {
	n := 0
	for _, w := range camelcase.Split(name) {
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			n++
		}
	}
	return n
}
