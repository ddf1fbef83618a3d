package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/abdidvp/archguard/internal/adapters/inbound/cli"
	"github.com/abdidvp/archguard/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testdataDir = "../../../../testdata"

func fixture(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join(testdataDir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return abs
}

// run executes the root command and returns its stdout and error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeProject creates a project holding only the given rule document.
func writeProject(t *testing.T, document string) string {
	t.Helper()
	return testutil.WriteTree(t, map[string]string{".archguard.yaml": document})
}
