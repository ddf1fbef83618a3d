package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/adapters/outbound/cache"
	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/adapters/outbound/extractor"
	"github.com/abdidvp/archguard/internal/adapters/outbound/settings"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/spf13/cobra"
)

// runContext is what every analysis command needs before it can start.
type runContext struct {
	path     string
	settings settings.Settings
	logger   *slog.Logger
}

// prepare resolves the project directory from the optional [path] argument
// and loads run settings for it.
func prepare(cmd *cobra.Command, args []string) (*runContext, error) {
	p := "."
	if len(args) > 0 {
		p = args[0]
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", abs)
	}

	s, err := settings.Load(abs, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.DiscardHandler)
	if s.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return &runContext{path: abs, settings: s, logger: logger}, nil
}

// checkService wires the check pipeline. A non-empty edgesFile replaces
// source extraction with a pre-computed edge list.
func (rc *runContext) checkService(edgesFile string) *application.CheckService {
	opts := []extractor.Option{
		extractor.WithLogger(rc.logger),
		extractor.WithWorkers(rc.settings.Workers),
	}
	if rc.settings.Cache {
		opts = append(opts, extractor.WithCache(cache.New()))
	}
	var ext domain.EdgeExtractor = extractor.New(opts...)
	if edgesFile != "" {
		ext = extractor.NewEdgeList(edgesFile)
	}
	return application.NewCheckService(ext, config.New(),
		application.WithLogger(rc.logger),
		application.WithTimeout(rc.settings.Timeout),
		application.WithWorkers(rc.settings.Workers),
	)
}

func (rc *runContext) jsonOutput() bool {
	return rc.settings.Format == settings.FormatJSON
}

func renderJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
