package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewFindOutputsController); err != nil {
		return err
	}
	if err := container.Provide(NewQualifiedNamesController); err != nil {
		return err
	}
	if err := container.Provide(NewMergeController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	findOutputsController *FindOutputsController,
	qualifiedNamesController *QualifiedNamesController,
	mergeController *MergeController,
) *[]entities.Controller {
	return &[]entities.Controller{
		findOutputsController,
		qualifiedNamesController,
		mergeController,
	}
}
