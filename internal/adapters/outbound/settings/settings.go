// Package settings resolves run settings (output format, thresholds,
// timeouts) from defaults, the rule document, the environment and flags.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override, e.g. ARCHGUARD_FORMAT.
const EnvPrefix = "ARCHGUARD_"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultTimeout bounds extraction when nothing else is configured.
const DefaultTimeout = 2 * time.Minute

// Settings controls how a run behaves. None of it changes the verdict.
type Settings struct {
	Format      string        `koanf:"format"`
	MinSeverity string        `koanf:"min_severity"`
	Timeout     time.Duration `koanf:"timeout"`
	Workers     int           `koanf:"workers"`
	Verbose     bool          `koanf:"verbose"`
	Cache       bool          `koanf:"cache"`
	Config      string        `koanf:"config"`
}

// Severity returns the parsed display threshold.
func (s Settings) Severity() domain.Severity {
	sev, err := domain.ParseSeverity(s.MinSeverity)
	if err != nil {
		return domain.SeverityWarning
	}
	return sev
}

// Validate rejects values no command can act on.
func (s Settings) Validate() error {
	if s.Format != FormatText && s.Format != FormatJSON {
		return fmt.Errorf("unknown format %q (valid: %s, %s)", s.Format, FormatText, FormatJSON)
	}
	if _, err := domain.ParseSeverity(s.MinSeverity); err != nil {
		return err
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", s.Timeout)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", s.Workers)
	}
	return nil
}

// Load resolves settings for projectPath.
// Precedence (highest to lowest): flags > env vars > settings block of the
// rule document > defaults. Only flags the user changed take part.
func Load(projectPath string, flags *pflag.FlagSet) (Settings, error) {
	k := koanf.New(".")

	// 1. defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"format":       FormatText,
		"min_severity": string(domain.SeverityWarning),
		"timeout":      DefaultTimeout.String(),
		"workers":      0,
		"verbose":      false,
		"cache":        false,
		"config":       "",
	}, "."), nil); err != nil {
		return Settings{}, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. settings block of the rule document
	docPath := documentPath(projectPath, flags)
	if _, err := os.Stat(docPath); err == nil {
		doc := koanf.New(".")
		if err := doc.Load(file.Provider(docPath), yaml.Parser()); err != nil {
			return Settings{}, &domain.ConfigError{Path: docPath, Err: err}
		}
		if doc.Exists("settings") {
			if err := k.Merge(doc.Cut("settings")); err != nil {
				return Settings{}, &domain.ConfigError{Path: docPath, Err: err}
			}
		}
	}

	// 3. environment: ARCHGUARD_MIN_SEVERITY -> min_severity
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Settings{}, fmt.Errorf("loading environment: %w", err)
	}

	// 4. explicitly set flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Settings{}, fmt.Errorf("loading flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// documentPath is the rule document the settings block is read from: the
// --config flag, then ARCHGUARD_CONFIG, then the default file name.
func documentPath(projectPath string, flags *pflag.FlagSet) string {
	if flags != nil && flags.Changed("config") {
		if v, err := flags.GetString("config"); err == nil && v != "" {
			return v
		}
	}
	if v := os.Getenv(EnvPrefix + "CONFIG"); v != "" {
		return v
	}
	return filepath.Join(projectPath, config.FileName)
}
