//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repacktask/internal/domain/commands"
)

// StubMergeCommand is a stub implementation of commands.Merge.
type StubMergeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastOpts         commands.MergeCommandOptions
}

var _ commands.Merge = (*StubMergeCommand)(nil)

func (s *StubMergeCommand) Execute(_ context.Context, opts commands.MergeCommandOptions) error {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.ExecuteErr
}
