//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// SpyMergeEngineRepository implements repositories.MergeEngineRepository as a
// configurable spy.
type SpyMergeEngineRepository struct {
	// --- identity ---
	EngineName string
	Command    []string

	// --- Merge ---
	MergeErr   error
	MergeCalls []MergeCall
}

// MergeCall records a single invocation of Merge.
type MergeCall struct {
	Inputs []string
	Opts   entities.MergeOptions
}

var _ repositories.MergeEngineRepository = (*SpyMergeEngineRepository)(nil)

func (s *SpyMergeEngineRepository) Name() string { return s.EngineName }

func (s *SpyMergeEngineRepository) Merge(
	_ context.Context, inputs []string, opts entities.MergeOptions,
) error {
	s.MergeCalls = append(s.MergeCalls, MergeCall{Inputs: inputs, Opts: opts})
	return s.MergeErr
}

// Factory returns an engine factory that records the command line and hands
// out this spy.
func (s *SpyMergeEngineRepository) Factory() func(command []string) repositories.MergeEngineRepository {
	return func(command []string) repositories.MergeEngineRepository {
		s.Command = command
		return s
	}
}
