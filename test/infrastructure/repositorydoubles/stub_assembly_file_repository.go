//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// StubAssemblyFileRepository implements repositories.AssemblyFileRepository
// from a directory -> files map. Unknown directories fail to list.
type StubAssemblyFileRepository struct {
	Files      map[string][]string
	ListedDirs []string
}

var _ repositories.AssemblyFileRepository = (*StubAssemblyFileRepository)(nil)

func (s *StubAssemblyFileRepository) ListAssemblies(dir string) ([]string, error) {
	s.ListedDirs = append(s.ListedDirs, dir)
	files, ok := s.Files[dir]
	if !ok {
		return nil, fmt.Errorf("failed to list output directory %q", dir)
	}
	return files, nil
}
