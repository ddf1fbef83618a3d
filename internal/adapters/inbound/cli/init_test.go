package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_WritesPreset(t *testing.T) {
	for _, preset := range config.PresetNames() {
		t.Run(preset, func(t *testing.T) {
			tmpDir := t.TempDir()

			out, err := run(t, "init", tmpDir, "--preset", preset)
			require.NoError(t, err)
			assert.Contains(t, out, "Created .archguard.yaml from the "+preset+" preset")

			data, err := os.ReadFile(filepath.Join(tmpDir, ".archguard.yaml"))
			require.NoError(t, err)
			want, err := config.Preset(preset)
			require.NoError(t, err)
			assert.Equal(t, string(want), string(data))

			_, err = config.Parse(data)
			assert.NoError(t, err, "written document should load")
		})
	}
}

func TestInitCmd_DetectsProjectType(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		preset string
	}{
		{"go module", map[string]string{"go.mod": "module example.com/x\n"}, "go"},
		{"maven", map[string]string{"pom.xml": "<project/>"}, "java"},
		{"dotnet", map[string]string{"Shop.csproj": "<Project/>"}, "csharp"},
		{"node", map[string]string{"package.json": "{}"}, "typescript"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.WriteTree(t, tt.files)
			out, err := run(t, "init", dir)
			require.NoError(t, err)
			assert.Contains(t, out, "the "+tt.preset+" preset")
		})
	}
}

func TestInitCmd_UndetectableProject(t *testing.T) {
	_, err := run(t, "init", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --preset")
}

func TestInitCmd_UnknownPreset(t *testing.T) {
	_, err := run(t, "init", t.TempDir(), "--preset", "cobol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "cobol"`)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".archguard.yaml"), []byte("existing"), 0644))

	_, err := run(t, "init", tmpDir, "--preset", "go")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".archguard.yaml"), []byte("existing"), 0644))

	_, err := run(t, "init", tmpDir, "--preset", "go", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, ".archguard.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "layers:")
}
