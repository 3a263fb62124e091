package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repacktask/internal/domain/commands"
	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// QualifiedNamesController handles the "qualified-names" subcommand.
type QualifiedNamesController struct {
	command commands.QualifiedNames
}

// NewQualifiedNamesController creates a new QualifiedNamesController.
func NewQualifiedNamesController(command commands.QualifiedNames) *QualifiedNamesController {
	return &QualifiedNamesController{command: command}
}

// GetBind returns the Cobra command metadata for the qualified-names controller.
func (it *QualifiedNamesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "qualified-names [files...]",
		Short: "Print the fully qualified name of each assembly",
		Long: `Read each assembly file and print its fully qualified name, one per line,
in the order given. Files that are not readable assemblies are skipped.`,
	}
}

// AddFlags adds no flags; the files are positional arguments.
func (it *QualifiedNamesController) AddFlags(*cobra.Command) {}

// Execute prints the qualified names. It never fails.
func (it *QualifiedNamesController) Execute(cmd *cobra.Command, args []string) error {
	for _, name := range it.command.Execute(context.Background(), args) {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
