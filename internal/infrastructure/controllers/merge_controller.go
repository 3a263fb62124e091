package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rios0rios0/repacktask/internal/domain/commands"
	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// MergeController handles the "merge" subcommand.
type MergeController struct {
	command            commands.Merge
	settingsRepository repositories.SettingsRepository
}

// NewMergeController creates a new MergeController.
func NewMergeController(
	command commands.Merge,
	settingsRepository repositories.SettingsRepository,
) *MergeController {
	return &MergeController{
		command:            command,
		settingsRepository: settingsRepository,
	}
}

// GetBind returns the Cobra command metadata for the merge controller.
func (it *MergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "merge [files...]",
		Short: "Merge assemblies into a single output assembly",
		Long: `Merge the given assemblies (primary assembly first) into one output assembly
using an external ILRepack or ILMerge executable.

Inputs whose fully qualified names are identical are merged only once; a warning
is logged when the same assembly name appears in several versions. Defaults come
from the settings file (.repacktask.yaml, repacktask.toml or repacktask.hcl);
flags given on the command line take precedence.`,
	}
}

// AddFlags adds the merge flags to the given Cobra command.
func (it *MergeController) AddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("out", "", "Output assembly file")
	flags.String("target-kind", string(entities.TargetKindSameAsPrimaryAssembly),
		"Output kind: Dll, Exe, WinExe or SameAsPrimaryAssembly")
	flags.Bool("internalize", false, "Make the merged types internal")
	flags.String("exclude-file", "", "File listing types to keep public when internalizing")
	flags.String("attribute-file", "", "Assembly whose attributes are copied to the output")
	flags.String("key-file", "", "Strong-name key file used to sign the output")
	flags.StringArray("lib", nil, "Extra directory searched for referenced assemblies (repeatable)")
	flags.Bool("closed", false, "Merge the transitive closure of the inputs")
	flags.Bool("copy-attributes", false, "Copy assembly attributes from every input")
	flags.Bool("debug-info", true, "Produce debug information for the output")
	flags.Bool("xml-docs", false, "Merge the XML documentation files")
	flags.Bool("parallel", true, "Let the engine work in parallel when it supports it")
	flags.Bool("log", false, "Ask the engine to log to the console")
	flags.String("log-file", "", "File the engine logs to")
	flags.String("engine", "", "Merge engine: ilrepack or ilmerge")
	flags.String("engine-command", "", "Command line used to run the engine")
	flags.String("project-dir", "", "Directory relative paths are resolved against (default: working directory)")
	_ = cmd.MarkFlagRequired("out")
}

// Execute builds the merge options from settings and flags and runs the merge.
func (it *MergeController) Execute(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	out, _ := flags.GetString("out")
	if out == "" {
		return errors.New("--out is required")
	}

	settings, err := it.loadSettings(flags)
	if err != nil {
		logger.Errorf("Failed to load settings: %v", err)
		return err
	}

	projectDir, _ := flags.GetString("project-dir")
	if projectDir == "" {
		if projectDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to resolve the working directory: %w", err)
		}
	}

	merge := settings.Merge
	overrideString(flags, "target-kind", &merge.TargetKind)
	overrideBool(flags, "internalize", &merge.Internalize)
	overrideString(flags, "exclude-file", &merge.ExcludeFile)
	overrideString(flags, "attribute-file", &merge.AttributeFile)
	overrideString(flags, "key-file", &merge.KeyFile)
	overrideBool(flags, "closed", &merge.Closed)
	overrideBool(flags, "copy-attributes", &merge.CopyAttributes)
	overrideBool(flags, "debug-info", &merge.DebugInfo)
	overrideBool(flags, "xml-docs", &merge.XMLDocumentation)
	overrideBool(flags, "parallel", &merge.Parallel)
	overrideBool(flags, "log", &merge.Log)
	overrideString(flags, "log-file", &merge.LogFile)
	if flags.Changed("lib") {
		merge.LibraryPath, _ = flags.GetStringArray("lib")
	}

	overrideString(flags, "engine", &settings.Engine.Name)
	overrideString(flags, "engine-command", &settings.Engine.Command)

	targetKind, ok := entities.ParseTargetKind(merge.TargetKind)
	if !ok {
		logger.Warn(entities.TargetKindWarning)
	}

	err = it.command.Execute(context.Background(), commands.MergeCommandOptions{
		InputAssemblies: args,
		EngineName:      settings.Engine.Name,
		EngineCommand:   settings.EngineCommand(),
		Merge: entities.MergeOptions{
			OutputFile:        entities.ResolvePath(projectDir, out),
			TargetKind:        targetKind,
			Internalize:       merge.Internalize,
			ExcludeFile:       entities.ResolvePath(projectDir, merge.ExcludeFile),
			AttributeFile:     entities.ResolvePath(projectDir, merge.AttributeFile),
			KeyFile:           entities.ResolvePath(projectDir, merge.KeyFile),
			Log:               merge.Log,
			LogFile:           entities.ResolvePath(projectDir, merge.LogFile),
			Closed:            merge.Closed,
			CopyAttributes:    merge.CopyAttributes,
			DebugInfo:         merge.DebugInfo,
			XMLDocumentation:  merge.XMLDocumentation,
			Parallel:          merge.Parallel,
			SearchDirectories: entities.SearchDirectories(projectDir, merge.LibraryPath),
		},
	})
	if err != nil {
		logger.Errorf("Merge failed: %v", err)
		return err
	}
	return nil
}

// loadSettings reads the file named by --config, or the first one found in the
// default locations. Without any file the defaults apply.
func (it *MergeController) loadSettings(flags *pflag.FlagSet) (*entities.Settings, error) {
	configPath, _ := flags.GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debug("No settings file found, using defaults")
			return entities.DefaultSettings(), nil
		}
		configPath = found
	}

	logger.Debugf("Loading settings from %s", configPath)
	return it.settingsRepository.Load(configPath)
}

func overrideString(flags *pflag.FlagSet, name string, target *string) {
	if flags.Changed(name) {
		*target, _ = flags.GetString(name)
	}
}

func overrideBool(flags *pflag.FlagSet, name string, target *bool) {
	if flags.Changed(name) {
		*target, _ = flags.GetBool(name)
	}
}
