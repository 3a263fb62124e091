package commands

import (
	"context"
	"path/filepath"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// QualifiedNames is the interface for the qualified-names command.
type QualifiedNames interface {
	Execute(ctx context.Context, paths []string) []string
}

// QualifiedNamesCommand projects assembly files onto their fully qualified names.
type QualifiedNamesCommand struct {
	identities repositories.IdentityRepository
}

// NewQualifiedNamesCommand creates a new QualifiedNamesCommand.
func NewQualifiedNamesCommand(identities repositories.IdentityRepository) *QualifiedNamesCommand {
	return &QualifiedNamesCommand{identities: identities}
}

// Execute returns the fully qualified name of every readable file, in input
// order. Files that cannot be read are left out without any error.
func (it *QualifiedNamesCommand) Execute(_ context.Context, paths []string) []string {
	absolute := make([]string, 0, len(paths))
	for _, path := range paths {
		resolved, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		absolute = append(absolute, resolved)
	}

	entries := readIdentities(it.identities, absolute, ignoreUnreadable)
	return fullNames(entries)
}

func fullNames(entries []entities.IdentityWithPath) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Identity.FullName())
	}
	return names
}
