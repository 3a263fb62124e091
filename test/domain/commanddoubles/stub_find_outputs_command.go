//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repacktask/internal/domain/commands"
	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// StubFindOutputsCommand is a stub implementation of commands.FindOutputs.
type StubFindOutputsCommand struct {
	ExecuteCallCount int
	Result           *entities.ResolvedOutputSet
	ExecuteErr       error
	LastOpts         commands.FindOutputsOptions
}

var _ commands.FindOutputs = (*StubFindOutputsCommand)(nil)

func (s *StubFindOutputsCommand) Execute(
	_ context.Context,
	opts commands.FindOutputsOptions,
) (*entities.ResolvedOutputSet, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Result, s.ExecuteErr
}
