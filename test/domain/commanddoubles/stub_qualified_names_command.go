//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repacktask/internal/domain/commands"
)

// StubQualifiedNamesCommand is a stub implementation of commands.QualifiedNames.
type StubQualifiedNamesCommand struct {
	ExecuteCallCount int
	Names            []string
	LastPaths        []string
}

var _ commands.QualifiedNames = (*StubQualifiedNamesCommand)(nil)

func (s *StubQualifiedNamesCommand) Execute(_ context.Context, paths []string) []string {
	s.ExecuteCallCount++
	s.LastPaths = paths
	return s.Names
}
