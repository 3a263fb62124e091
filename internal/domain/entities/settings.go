package entities

import (
	"errors"
	"os"
	"path/filepath"
)

const defaultEngineName = "ilrepack"

// Settings is the top-level configuration file for repacktask.
type Settings struct {
	Engine EngineSettings `yaml:"engine" toml:"engine"`
	Merge  MergeSettings  `yaml:"merge"  toml:"merge"`
}

// EngineSettings selects the external merge engine.
type EngineSettings struct {
	Name    string `yaml:"name"    toml:"name"`    // "ilrepack" or "ilmerge"
	Command string `yaml:"command" toml:"command"` // shell-style command line, defaults to Name
}

// MergeSettings holds defaults for the merge options; command-line flags override them.
type MergeSettings struct {
	TargetKind       string   `yaml:"target_kind"       toml:"target_kind"`
	Internalize      bool     `yaml:"internalize"       toml:"internalize"`
	ExcludeFile      string   `yaml:"exclude_file"      toml:"exclude_file"`
	AttributeFile    string   `yaml:"attribute_file"    toml:"attribute_file"`
	KeyFile          string   `yaml:"key_file"          toml:"key_file"`
	Log              bool     `yaml:"log"               toml:"log"`
	LogFile          string   `yaml:"log_file"          toml:"log_file"`
	Closed           bool     `yaml:"closed"            toml:"closed"`
	CopyAttributes   bool     `yaml:"copy_attributes"   toml:"copy_attributes"`
	DebugInfo        bool     `yaml:"debug_info"        toml:"debug_info"`
	XMLDocumentation bool     `yaml:"xml_documentation" toml:"xml_documentation"`
	Parallel         bool     `yaml:"parallel"          toml:"parallel"`
	LibraryPath      []string `yaml:"library_path"      toml:"library_path"`
}

// DefaultSettings returns the settings used when no file is found. Decoders
// overlay file contents on top of these values.
func DefaultSettings() *Settings {
	return &Settings{
		Engine: EngineSettings{Name: defaultEngineName},
		Merge: MergeSettings{
			TargetKind: string(TargetKindSameAsPrimaryAssembly),
			DebugInfo:  true,
			Parallel:   true,
		},
	}
}

// Validate checks for required configuration values.
func (it *Settings) Validate() error {
	if it.Engine.Name == "" {
		return errors.New("engine.name is required")
	}
	return nil
}

// EngineCommand returns the configured command line, falling back to the engine name.
func (it *Settings) EngineCommand() string {
	if it.Engine.Command != "" {
		return it.Engine.Command
	}
	return it.Engine.Name
}

// FindConfigFile searches for a settings file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".repacktask.yaml",
		".repacktask.yml",
		"repacktask.yaml",
		"repacktask.yml",
		"repacktask.toml",
		"repacktask.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}
