package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/abdidvp/archguard/internal/adapters/outbound/settings"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Process exit codes.
const (
	ExitPass       = 0
	ExitViolations = 1
	ExitFailure    = 2
)

// ExitError carries a specific exit code out of a command. A nil Err means
// the command already reported everything it had to say.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "archguard",
		Short:         "Keep your architecture the way you drew it",
		Long:          "archguard extracts the dependency graph of a codebase and checks it against declarative layer, cycle, reach-through and naming rules.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Rule document (default <path>/.archguard.yaml)")
	pf.String("format", settings.FormatText, "Output format: text or json")
	pf.String("min-severity", "warning", "Lowest severity to display: error or warning")
	pf.Duration("timeout", settings.DefaultTimeout, "Upper bound for dependency extraction")
	pf.Int("workers", 0, "Concurrent workers (0 uses every CPU)")
	pf.Bool("cache", false, "Reuse parse results of unchanged files (.archguard/cache)")
	pf.BoolP("verbose", "v", false, "Log progress to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newGraphCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	return finish(cmd.ErrOrStderr(), cmd.Execute())
}

// ExitCode maps a command error to its exit code: 0 for success, the
// carried code for an *ExitError, and ExitFailure for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitPass
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFailure
}

func finish(w io.Writer, err error) int {
	code := ExitCode(err)
	var ee *ExitError
	if err != nil && (!errors.As(err, &ee) || ee.Err != nil) {
		fmt.Fprintln(w, "Error:", err)
	}
	return code
}
