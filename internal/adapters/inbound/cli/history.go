package cli

import (
	"fmt"

	"github.com/abdidvp/archguard/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/archguard/internal/adapters/outbound/history"
	"github.com/abdidvp/archguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show recorded check runs",
		Long:  "Show runs recorded with check --record, oldest first, with the change in error count between runs.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := prepare(cmd, args)
			if err != nil {
				return err
			}

			svc := application.NewHistoryService(history.New(), gitinfo.New(), rc.logger)
			entries, err := svc.List(rc.path)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			if rc.jsonOutput() {
				if entries == nil {
					entries = []domain.RunEntry{}
				}
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "last", 0, "Only show the most recent N runs")

	return cmd
}
