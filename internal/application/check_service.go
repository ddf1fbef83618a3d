package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/graph"
	"github.com/abdidvp/archguard/internal/domain/pattern"
	"github.com/abdidvp/archguard/internal/domain/report"
	"github.com/abdidvp/archguard/internal/domain/rules"
)

// DefaultTimeout bounds extraction when no timeout is configured.
const DefaultTimeout = 2 * time.Minute

// CheckService orchestrates the check pipeline:
// load rules -> extract edges -> build graph -> evaluate rules -> aggregate.
type CheckService struct {
	extractor domain.EdgeExtractor
	loader    domain.ConfigLoader
	compiler  *pattern.Compiler
	logger    *slog.Logger
	timeout   time.Duration
	workers   int
}

// Option configures a CheckService.
type Option func(*CheckService)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *CheckService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds the extraction step. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *CheckService) { s.timeout = d }
}

// WithWorkers bounds concurrent rule evaluation.
func WithWorkers(n int) Option {
	return func(s *CheckService) { s.workers = n }
}

func NewCheckService(extractor domain.EdgeExtractor, loader domain.ConfigLoader, opts ...Option) *CheckService {
	s := &CheckService{
		extractor: extractor,
		loader:    loader,
		compiler:  pattern.NewCompiler(pattern.DefaultCacheSize),
		logger:    slog.New(slog.DiscardHandler),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckResult carries the report together with what it was computed from.
type CheckResult struct {
	Config domain.ProjectConfig
	Graph  *graph.Graph
	Report *domain.Report
}

// RuleStatus describes whether a configured rule can be evaluated.
type RuleStatus struct {
	Index int         `json:"index"`
	Rule  domain.Rule `json:"rule"`
	Valid bool        `json:"valid"`
	Error string      `json:"error,omitempty"`
	Notes []string    `json:"notes,omitempty"`
}

// NoteAllSources marks a dependency rule whose from selector is empty.
const NoteAllSources = "no from selector: every module is a source, unlayered ones included"

// LoadConfig loads the rule document. Failures are *domain.ConfigError.
func (s *CheckService) LoadConfig(projectPath, configPath string) (domain.ProjectConfig, error) {
	cfg, err := s.loader.Load(projectPath, configPath)
	if err != nil {
		var ce *domain.ConfigError
		if errors.As(err, &ce) {
			return domain.ProjectConfig{}, err
		}
		return domain.ProjectConfig{}, &domain.ConfigError{Path: configPath, Err: err}
	}
	s.logger.Debug("configuration loaded", "layers", len(cfg.Layers), "rules", len(cfg.Rules))
	return cfg, nil
}

// BuildGraph extracts dependencies from projectPath and builds the module
// graph. Extraction runs under the service timeout.
func (s *CheckService) BuildGraph(ctx context.Context, projectPath string, cfg domain.ProjectConfig) (*graph.Graph, error) {
	extractCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	ext, err := s.extractor.Extract(extractCtx, projectPath, domain.ExtractOptions{
		ExcludePaths: cfg.ExcludePaths,
		Languages:    cfg.Languages,
	})
	if err != nil {
		var ee *domain.ExtractionError
		if errors.As(err, &ee) {
			return nil, err
		}
		return nil, &domain.ExtractionError{Path: projectPath, Err: err}
	}
	s.logger.Debug("dependencies extracted",
		"files", ext.Files, "edges", len(ext.Edges), "declarations", len(ext.Declarations),
		"elapsed", time.Since(start))

	opts := []graph.Option{
		graph.WithCompiler(s.compiler),
		graph.WithDeclarations(ext.Declarations),
	}
	if len(cfg.Aliases) > 0 {
		opts = append(opts, graph.WithAliases(cfg.Aliases))
	}
	if cfg.CollapseIndex {
		opts = append(opts, graph.WithIndexCollapse())
	}

	g, err := graph.Build(ext.Edges, cfg.Layers, opts...)
	if err != nil {
		var me *domain.MalformedEdgeError
		if errors.As(err, &me) {
			return nil, err
		}
		return nil, &domain.ConfigError{Err: err}
	}
	s.logger.Info("graph built", "modules", g.ModuleCount(), "edges", g.EdgeCount())
	return g, nil
}

// Check runs the full pipeline. Fatal problems are returned as
// *domain.ConfigError, *domain.ExtractionError or *domain.MalformedEdgeError;
// rule violations are data in the report.
func (s *CheckService) Check(ctx context.Context, projectPath, configPath string) (*CheckResult, error) {
	cfg, err := s.LoadConfig(projectPath, configPath)
	if err != nil {
		return nil, err
	}

	g, err := s.BuildGraph(ctx, projectPath, cfg)
	if err != nil {
		return nil, err
	}

	rep, err := s.Evaluate(ctx, g, cfg.Rules)
	if err != nil {
		return nil, err
	}

	return &CheckResult{Config: cfg, Graph: g, Report: rep}, nil
}

// Evaluate runs rules against an already built graph.
func (s *CheckService) Evaluate(ctx context.Context, g *graph.Graph, rs []domain.Rule) (*domain.Report, error) {
	sets, err := s.engine().Evaluate(ctx, g, rs)
	if err != nil {
		return nil, err
	}
	rep := report.Aggregate(sets...)
	rep.Modules = g.ModuleCount()
	rep.Edges = g.EdgeCount()

	s.logger.Info("rules evaluated",
		"rules", len(rs), "errors", rep.Summary.Errors, "warnings", rep.Summary.Warnings, "passed", rep.Passed)
	return rep, nil
}

// RuleStatuses validates every configured rule without touching the source
// tree.
func (s *CheckService) RuleStatuses(cfg domain.ProjectConfig) []RuleStatus {
	e := s.engine()
	out := make([]RuleStatus, len(cfg.Rules))
	for i, r := range cfg.Rules {
		out[i] = RuleStatus{Index: i, Rule: r, Valid: true}
		if err := e.Validate(i, r); err != nil {
			out[i].Valid = false
			out[i].Error = err.Error()
		}
		if (r.Kind == domain.RuleForbidden || r.Kind == domain.RuleReachThrough) && r.From.IsEmpty() {
			out[i].Notes = append(out[i].Notes, NoteAllSources)
		}
	}
	return out
}

func (s *CheckService) engine() *rules.Engine {
	return rules.NewEngine(
		rules.WithCompiler(s.compiler),
		rules.WithLogger(s.logger),
		rules.WithWorkers(s.workers),
	)
}

// Cycles returns the representative cycles of g.
func (s *CheckService) Cycles(g *graph.Graph) [][]string {
	cycles := graph.FindCycles(g)
	s.logger.Debug("cycles detected", "count", len(cycles))
	return cycles
}
