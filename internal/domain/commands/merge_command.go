package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/repacktask/internal/infrastructure/repositories"
)

// Merge is the interface for the merge command.
type Merge interface {
	Execute(ctx context.Context, opts MergeCommandOptions) error
}

// MergeCommandOptions holds runtime options for a single merge.
type MergeCommandOptions struct {
	InputAssemblies []string // Primary assembly first
	EngineName      string   // Registered engine, e.g. "ilrepack"
	EngineCommand   string   // Shell-style command line; blank runs EngineName
	Merge           entities.MergeOptions
}

// MergeCommand deduplicates the input assemblies by identity and hands them to
// the external merge engine.
type MergeCommand struct {
	identities     repositories.IdentityRepository
	engineRegistry *infraRepos.EngineRegistry
}

// NewMergeCommand creates a new MergeCommand.
func NewMergeCommand(
	identities repositories.IdentityRepository,
	engineRegistry *infraRepos.EngineRegistry,
) *MergeCommand {
	return &MergeCommand{
		identities:     identities,
		engineRegistry: engineRegistry,
	}
}

// Execute merges the unique, readable inputs into opts.Merge.OutputFile.
func (it *MergeCommand) Execute(ctx context.Context, opts MergeCommandOptions) error {
	if opts.Merge.OutputFile == "" {
		return errors.New("an output file is required")
	}

	engine, err := it.engineRegistry.Get(opts.EngineName, opts.EngineCommand)
	if err != nil {
		return err
	}

	entries := readIdentities(it.identities, opts.InputAssemblies, warnUnreadable)
	unique := entities.DeduplicateIdentities(entries)
	if dropped := len(entries) - len(unique); dropped > 0 {
		logger.Infof("Dropped %d duplicate assembl%s", dropped, pluralSuffix(dropped))
	}
	reportVersionConflicts(entities.FindVersionConflicts(unique))

	if len(unique) == 0 {
		return errors.New("no readable input assemblies to merge")
	}

	paths := make([]string, 0, len(unique))
	for _, entry := range unique {
		paths = append(paths, entry.Path)
	}

	requested := len(opts.InputAssemblies)
	logger.Infof("Merging %d assembl%s to '%s'.", requested, pluralSuffix(requested), opts.Merge.OutputFile)
	logger.Infof("Using parallel: %t", opts.Merge.Parallel)

	if mergeErr := engine.Merge(ctx, paths, opts.Merge); mergeErr != nil {
		return fmt.Errorf("merge with %s failed: %w", engine.Name(), mergeErr)
	}

	logger.Infof("Merged %d assembl%s into '%s'", len(paths), pluralSuffix(len(paths)), opts.Merge.OutputFile)
	return nil
}

func reportVersionConflicts(conflicts []entities.VersionConflict) {
	for _, conflict := range conflicts {
		versions := make([]string, 0, len(conflict.Entries))
		for _, entry := range conflict.Entries {
			versions = append(versions, fmt.Sprintf("%s (%s)", entry.Identity.Version, entry.Path))
		}
		logger.Warnf(
			"Assembly %q is merged in %d versions: %s; highest is %s",
			conflict.Name, len(conflict.Entries), strings.Join(versions, ", "), conflict.Highest.Identity.Version,
		)
	}
}
