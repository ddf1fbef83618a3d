package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, appconfig.FileName), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_MissingExplicitFileFails(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	_, err := loader.Load(dir, filepath.Join(dir, "rules.yaml"))
	var ce *domain.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, filepath.Join(dir, "rules.yaml"), ce.Path)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
layers:
  - name: Domain
    patterns: ["^src/domain/"]
aliases:
  "@/": "src/"
collapse_index: true
settings:
  format: json
rules:
  - name: domain-independence
    kind: forbidden
    from: {layers: [Domain]}
    to: "^src/infrastructure/"
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Domain"}, cfg.LayerNames())
	assert.Equal(t, "src/", cfg.Aliases["@/"])
	assert.True(t, cfg.CollapseIndex)
	require.Len(t, cfg.Rules, 1)
	require.NotNil(t, cfg.Rules[0].To)
	assert.Equal(t, "^src/infrastructure/", cfg.Rules[0].To.Path)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir, "")
	var ce *domain.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), appconfig.FileName)
}

func TestYAMLLoader_DuplicateLayersAreFatal(t *testing.T) {
	loader := appconfig.New()

	_, err := loader.Load(filepath.Join("..", "..", "..", "..", "testdata", "broken-config"), "")
	var ce *domain.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), `duplicate layer name "Domain"`)
}

func TestYAMLLoader_InvalidRuleIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
rules:
  - name: broken
    kind: forbidden
    from: "("
`)
	cfg, err := appconfig.New().Load(dir, "")
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 1)
	assert.Error(t, cfg.Rules[0].Validate())
}

func TestPresets_ParseAndValidate(t *testing.T) {
	names := appconfig.PresetNames()
	assert.Equal(t, []string{"csharp", "go", "java", "typescript"}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := appconfig.Preset(name)
			require.NoError(t, err)

			cfg, err := appconfig.Parse(data)
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Layers)
			for _, r := range cfg.Rules {
				assert.NoError(t, r.Validate(), r.Name)
			}
		})
	}
}

func TestPreset_Unknown(t *testing.T) {
	_, err := appconfig.Preset("cobol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typescript")
}
