//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// StubIdentityRepository implements repositories.IdentityRepository from a
// path -> identity map. Paths missing from the map fail to read.
type StubIdentityRepository struct {
	Identities map[string]entities.Identity
	ReadPaths  []string
}

var _ repositories.IdentityRepository = (*StubIdentityRepository)(nil)

// NewStubIdentityRepository creates a stub serving the given entries.
func NewStubIdentityRepository(entries ...entities.IdentityWithPath) *StubIdentityRepository {
	identities := make(map[string]entities.Identity, len(entries))
	for _, entry := range entries {
		identities[entry.Path] = entry.Identity
	}
	return &StubIdentityRepository{Identities: identities}
}

func (s *StubIdentityRepository) ReadIdentity(path string) (entities.Identity, error) {
	s.ReadPaths = append(s.ReadPaths, path)
	identity, ok := s.Identities[path]
	if !ok {
		return entities.Identity{}, fmt.Errorf("%s is not a managed assembly", path)
	}
	return identity, nil
}
