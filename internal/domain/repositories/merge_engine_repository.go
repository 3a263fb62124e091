package repositories

import (
	"context"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// MergeEngineRepository abstracts the external engine that combines assemblies.
// Inputs are deduplicated paths with the primary assembly first. Merge returns
// an error whenever the engine signals failure.
type MergeEngineRepository interface {
	// Name returns the engine identifier (e.g. "ilrepack").
	Name() string

	Merge(ctx context.Context, inputs []string, opts entities.MergeOptions) error
}
