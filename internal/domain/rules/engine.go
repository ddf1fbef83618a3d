// Package rules evaluates architecture rules against a module graph.
package rules

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/graph"
	"github.com/abdidvp/archguard/internal/domain/pattern"
)

// evaluator produces the violations of one rule. A non-nil error that is
// not a context error marks the rule as misconfigured.
type evaluator func(ec *evalContext, r domain.Rule) ([]domain.Violation, error)

var evaluators = map[domain.RuleKind]evaluator{
	domain.RuleForbidden:    evalForbidden,
	domain.RuleCircular:     evalCircular,
	domain.RuleNaming:       evalNaming,
	domain.RuleReachThrough: evalReachThrough,
}

// Engine evaluates rule sets. An Engine is stateless between calls and may be
// reused concurrently.
type Engine struct {
	compiler *pattern.Compiler
	workers  int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of rules evaluated at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCompiler shares a pattern compiler with the engine.
func WithCompiler(c *pattern.Compiler) Option {
	return func(e *Engine) {
		if c != nil {
			e.compiler = c
		}
	}
}

// NewEngine creates an Engine. By default it uses one worker per CPU and
// discards logs.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		compiler: pattern.NewCompiler(pattern.DefaultCacheSize),
		workers:  runtime.GOMAXPROCS(0),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type evalContext struct {
	ctx    context.Context
	g      *graph.Graph
	engine *Engine

	cyclesOnce sync.Once
	cycles     [][]string
}

func (ec *evalContext) findCycles() [][]string {
	ec.cyclesOnce.Do(func() { ec.cycles = graph.FindCycles(ec.g) })
	return ec.cycles
}

// Evaluate runs every rule against g and returns one violation set per rule,
// in rule order. A misconfigured rule yields a single warning violation with
// entity "rule" and never stops the other rules. The only error returned is
// the context's.
func (e *Engine) Evaluate(ctx context.Context, g *graph.Graph, rules []domain.Rule) ([][]domain.Violation, error) {
	ec := &evalContext{ctx: ctx, g: g, engine: e}
	results := make([][]domain.Violation, len(rules))

	eg, egCtx := errgroup.WithContext(ctx)
	ec.ctx = egCtx
	eg.SetLimit(e.workers)

	for i, r := range rules {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			vs, err := e.evaluateRule(ec, i, r)
			if err != nil {
				return err
			}
			results[i] = vs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating rules: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluating rules: %w", err)
	}
	return results, nil
}

func (e *Engine) evaluateRule(ec *evalContext, index int, r domain.Rule) ([]domain.Violation, error) {
	if err := e.Validate(index, r); err != nil {
		return []domain.Violation{e.configViolation(r, err)}, nil
	}

	vs, err := evaluators[r.Kind](ec, r)
	if err != nil {
		if ctxErr := ec.ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return []domain.Violation{e.configViolation(r, &domain.RuleConfigurationError{Rule: r.Name, Index: index, Err: err})}, nil
	}

	e.logger.Debug("rule evaluated", "rule", r.Name, "kind", r.Kind, "violations", len(vs))
	return vs, nil
}

// Validate reports whether a rule can be evaluated, compiling every pattern
// it references. The error is a *domain.RuleConfigurationError.
func (e *Engine) Validate(index int, r domain.Rule) error {
	wrap := func(err error) error {
		return &domain.RuleConfigurationError{Rule: r.Name, Index: index, Err: err}
	}
	if err := r.Validate(); err != nil {
		return wrap(err)
	}
	if _, ok := evaluators[r.Kind]; !ok {
		return wrap(fmt.Errorf("no evaluator for rule kind %q", r.Kind))
	}
	if _, err := e.compileSelector(r.From); err != nil {
		return wrap(fmt.Errorf("from: %w", err))
	}
	if r.To != nil {
		if _, err := e.compileSelector(*r.To); err != nil {
			return wrap(fmt.Errorf("to: %w", err))
		}
	}
	if r.Via != nil {
		if _, err := e.compileSelector(*r.Via); err != nil {
			return wrap(fmt.Errorf("via: %w", err))
		}
	}
	if r.Naming != nil && r.Naming.Pattern != "" {
		if _, err := e.compiler.Compile(regexPrefix + r.Naming.Pattern); err != nil {
			return wrap(fmt.Errorf("naming.pattern: %w", err))
		}
	}
	return nil
}

func (e *Engine) configViolation(r domain.Rule, err error) domain.Violation {
	label := r.Name
	if rce, ok := err.(*domain.RuleConfigurationError); ok {
		label = rce.RuleLabel()
	}
	e.logger.Warn("rule skipped", "rule", label, "error", err)
	return domain.Violation{
		Rule:     label,
		Kind:     r.Kind,
		Severity: domain.SeverityWarning,
		Entity:   domain.EntityRule,
		Message:  err.Error(),
		Because:  r.Because,
	}
}
