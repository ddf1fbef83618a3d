package cli

import (
	"fmt"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/spf13/cobra"
)

type rulesOutput struct {
	Source string                   `json:"source"`
	Layers []string                 `json:"layers"`
	Rules  []application.RuleStatus `json:"rules"`
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [path]",
		Short: "List the effective rules and whether they are valid",
		Long:  "Load the rule document and validate every rule without reading any source files. Invalid rules are reported but do not fail the command.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := prepare(cmd, args)
			if err != nil {
				return err
			}

			svc := rc.checkService("")
			cfg, err := svc.LoadConfig(rc.path, rc.settings.Config)
			if err != nil {
				return err
			}

			source := rc.settings.Config
			if source == "" {
				source = filepath.Join(rc.path, config.FileName)
			}
			statuses := svc.RuleStatuses(cfg)
			layers := cfg.LayerNames()

			if rc.jsonOutput() {
				return renderJSON(cmd, rulesOutput{Source: source, Layers: layers, Rules: statuses})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(source, layers, statuses))
			return nil
		},
	}
}
