package cli

import (
	"fmt"

	"github.com/abdidvp/archguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/spf13/cobra"
)

type graphOutput struct {
	Modules []domain.Module `json:"modules"`
	Edges   []domain.Edge   `json:"edges"`
	Layers  map[string]int  `json:"layers"`
	Cycles  [][]string      `json:"cycles"`
}

func newGraphCmd() *cobra.Command {
	var edgesFile string

	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Show the module graph",
		Long:  "Extract the dependency graph and show its modules, layer assignment, coupling and cycles without evaluating rules.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := prepare(cmd, args)
			if err != nil {
				return err
			}

			svc := rc.checkService(edgesFile)
			cfg, err := svc.LoadConfig(rc.path, rc.settings.Config)
			if err != nil {
				return err
			}
			g, err := svc.BuildGraph(cmd.Context(), rc.path, cfg)
			if err != nil {
				return err
			}
			cycles := svc.Cycles(g)

			if rc.jsonOutput() {
				if cycles == nil {
					cycles = [][]string{}
				}
				return renderJSON(cmd, graphOutput{
					Modules: g.Modules(),
					Edges:   g.Edges(),
					Layers:  g.LayerCounts(),
					Cycles:  cycles,
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderGraph(g, cfg.LayerNames(), cycles))
			return nil
		},
	}

	cmd.Flags().StringVar(&edgesFile, "edges", "", "Read dependency edges from a JSON or TSV file instead of parsing sources")

	return cmd
}
