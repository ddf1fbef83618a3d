package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/spf13/cobra"
)

// presetMarkers picks a preset from files found in the project root.
var presetMarkers = []struct {
	preset string
	globs  []string
}{
	{"go", []string{"go.mod"}},
	{"java", []string{"pom.xml", "build.gradle", "build.gradle.kts"}},
	{"csharp", []string{"*.sln", "*.csproj"}},
	{"typescript", []string{"tsconfig.json", "package.json"}},
}

func newInitCmd() *cobra.Command {
	var (
		preset string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .archguard.yaml rule document",
		Long: "Create a .archguard.yaml from a preset (" + strings.Join(config.PresetNames(), ", ") + ").\n" +
			"Without --preset the project type is detected from go.mod, pom.xml, *.csproj or package.json.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if preset == "" {
				preset = detectPreset(absPath)
				if preset == "" {
					return fmt.Errorf("could not detect the project type, use --preset (%s)", strings.Join(config.PresetNames(), ", "))
				}
			}

			content, err := config.Preset(preset)
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s from the %s preset\n", config.FileName, preset)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Preset to start from ("+strings.Join(config.PresetNames(), ", ")+")")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .archguard.yaml")

	return cmd
}

func detectPreset(dir string) string {
	for _, m := range presetMarkers {
		for _, g := range m.globs {
			if matches, _ := filepath.Glob(filepath.Join(dir, g)); len(matches) > 0 {
				return m.preset
			}
		}
	}
	return ""
}
