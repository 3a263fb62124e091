//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import "github.com/rios0rios0/repacktask/internal/domain/repositories"

// StubProjectRepository implements repositories.ProjectRepository with fixed results.
type StubProjectRepository struct {
	References   []string
	Err          error
	ReadProjects []string
}

var _ repositories.ProjectRepository = (*StubProjectRepository)(nil)

func (s *StubProjectRepository) ReferencedAssemblies(projectFile string) ([]string, error) {
	s.ReadProjects = append(s.ReadProjects, projectFile)
	return s.References, s.Err
}
