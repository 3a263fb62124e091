package entities

import "github.com/spf13/cobra"

// ControllerBind carries the Cobra command metadata of a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller binds one subcommand to a domain command.
type Controller interface {
	GetBind() ControllerBind
	AddFlags(command *cobra.Command)
	Execute(command *cobra.Command, arguments []string) error
}
