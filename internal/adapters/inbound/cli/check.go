package cli

import (
	"fmt"

	"github.com/abdidvp/archguard/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/archguard/internal/adapters/outbound/history"
	"github.com/abdidvp/archguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain/report"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		edgesFile string
		record    bool
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check the project against its architecture rules",
		Long: "Extract the dependency graph of the project, evaluate every rule in .archguard.yaml and report violations.\n" +
			"Exits 1 when an error-severity violation is found and 2 when the rules or sources cannot be read.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := prepare(cmd, args)
			if err != nil {
				return err
			}

			// 1. run the pipeline
			res, err := rc.checkService(edgesFile).Check(cmd.Context(), rc.path, rc.settings.Config)
			if err != nil {
				return err
			}

			// 2. record the run before filtering so history keeps full counts
			if record {
				hist := application.NewHistoryService(history.New(), gitinfo.New(), rc.logger)
				if _, err := hist.Record(rc.path, res.Report); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				}
			}

			// 3. render what passes the display threshold
			shown := report.Filter(res.Report, rc.settings.Severity())
			if rc.jsonOutput() {
				if err := renderJSON(cmd, shown); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(shown))
			}

			if !res.Report.Passed {
				return &ExitError{Code: ExitViolations}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&edgesFile, "edges", "", "Read dependency edges from a JSON or TSV file instead of parsing sources")
	cmd.Flags().BoolVar(&record, "record", false, "Append this run to .archguard/history")

	return cmd
}
