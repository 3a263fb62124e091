package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repacktask/internal/domain/commands"
	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// FindOutputsController handles the "find-outputs" subcommand.
type FindOutputsController struct {
	command commands.FindOutputs
}

// NewFindOutputsController creates a new FindOutputsController.
func NewFindOutputsController(command commands.FindOutputs) *FindOutputsController {
	return &FindOutputsController{command: command}
}

// GetBind returns the Cobra command metadata for the find-outputs controller.
func (it *FindOutputsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "find-outputs",
		Short: "Find the built assemblies matching the requested references",
		Long: `Scan the output directories for *.dll and *.exe assemblies and keep, for every
requested reference, the first assembly whose identity matches it.

References may be partial ("Foo") or fully qualified
("Foo, Version=1.0.0.0, Culture=neutral, PublicKeyToken=31bf3856ad364e35");
omitted parts match anything. The matched paths are printed one per line,
followed by the output assembly name. The command fails if any reference
cannot be parsed, after printing the result.`,
	}
}

// AddFlags adds the find-outputs flags to the given Cobra command.
func (it *FindOutputsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("input", "i", nil, "Requested assembly reference (repeatable)")
	cmd.Flags().String("project", "", "MSBuild project whose <Reference> items are requested too")
	cmd.Flags().String("output-assembly", "", "Name of the assembly produced by this build")
	cmd.Flags().StringArray("output-dir", nil, "Directory holding the built assemblies (repeatable)")
	_ = cmd.MarkFlagRequired("output-assembly")
	_ = cmd.MarkFlagRequired("output-dir")
}

// Execute resolves the requested references and prints the resulting tokens.
func (it *FindOutputsController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	inputs, _ := cmd.Flags().GetStringArray("input")
	project, _ := cmd.Flags().GetString("project")
	outputAssembly, _ := cmd.Flags().GetString("output-assembly")
	outputDirs, _ := cmd.Flags().GetStringArray("output-dir")

	if outputAssembly == "" {
		return errors.New("--output-assembly is required")
	}
	if len(outputDirs) == 0 {
		return errors.New("at least one --output-dir is required")
	}

	result, err := it.command.Execute(ctx, commands.FindOutputsOptions{
		InputAssemblies:    inputs,
		ProjectFile:        project,
		OutputAssemblyName: outputAssembly,
		OutputDirs:         outputDirs,
	})
	if result != nil {
		for _, token := range result.Tokens() {
			fmt.Fprintln(cmd.OutOrStdout(), token)
		}
	}
	if err != nil {
		logger.Errorf("Find outputs failed: %v", err)
		return err
	}
	return nil
}
