package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/abdidvp/archguard/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the rule document looked up in the project root.
const FileName = ".archguard.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .archguard.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the rule document. With an empty explicitPath it reads
// .archguard.yaml from projectPath and falls back to DefaultConfig when that
// file does not exist. An explicit path must exist.
func (l *YAMLLoader) Load(projectPath, explicitPath string) (domain.ProjectConfig, error) {
	path := explicitPath
	if path == "" {
		path = filepath.Join(projectPath, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicitPath == "" && errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, &domain.ConfigError{Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.ProjectConfig{}, &domain.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes and validates a rule document. Keys the document model does
// not know (such as the settings block) are ignored.
func Parse(data []byte) (domain.ProjectConfig, error) {
	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, err
	}
	return cfg, nil
}
