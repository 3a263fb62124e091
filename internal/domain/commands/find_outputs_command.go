package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// FindOutputs is the interface for the find-outputs command.
type FindOutputs interface {
	Execute(ctx context.Context, opts FindOutputsOptions) (*entities.ResolvedOutputSet, error)
}

// FindOutputsOptions holds runtime options for a single find-outputs invocation.
type FindOutputsOptions struct {
	InputAssemblies    []string // Requested references, e.g. "Foo, Version=1.0.0.0"
	ProjectFile        string   // If set, its <Reference> items are requested too
	OutputAssemblyName string   // Appended to the result as the last token
	OutputDirs         []string // Enumerated in order
}

// FindOutputsCommand determines which assemblies found in the output
// directories correspond to the requested references.
type FindOutputsCommand struct {
	files      repositories.AssemblyFileRepository
	identities repositories.IdentityRepository
	projects   repositories.ProjectRepository
}

// NewFindOutputsCommand creates a new FindOutputsCommand.
func NewFindOutputsCommand(
	files repositories.AssemblyFileRepository,
	identities repositories.IdentityRepository,
	projects repositories.ProjectRepository,
) *FindOutputsCommand {
	return &FindOutputsCommand{
		files:      files,
		identities: identities,
		projects:   projects,
	}
}

// Execute resolves the requested references against the output directories.
// When a requested reference cannot be parsed the resolved set is still
// returned, together with an error wrapping entities.ErrTaskFailed.
func (it *FindOutputsCommand) Execute(
	_ context.Context,
	opts FindOutputsOptions,
) (*entities.ResolvedOutputSet, error) {
	requested := append([]string{}, opts.InputAssemblies...)
	if opts.ProjectFile != "" {
		references, err := it.projects.ReferencedAssemblies(opts.ProjectFile)
		if err != nil {
			return nil, err
		}
		logger.Debugf("Read %d reference(s) from %s", len(references), opts.ProjectFile)
		requested = append(requested, references...)
	}

	var paths []string
	for _, dir := range opts.OutputDirs {
		found, err := it.files.ListAssemblies(dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	candidates := readIdentities(it.identities, paths, debugUnreadable)
	logger.Debugf("Found %d assemblies in %d output director(ies)", len(candidates), len(opts.OutputDirs))

	taskLog := entities.NewTaskLog(logger.WithField("task", "find-outputs"))
	result := entities.ResolveOutputSet(requested, candidates, opts.OutputAssemblyName, taskLog)

	if taskLog.HasLoggedErrors() {
		return &result, fmt.Errorf(
			"%w: %d requested reference(s) could not be parsed",
			entities.ErrTaskFailed, len(taskLog.Errors()),
		)
	}
	return &result, nil
}
