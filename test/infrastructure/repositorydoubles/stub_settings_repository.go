//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// StubSettingsRepository implements repositories.SettingsRepository with fixed results.
type StubSettingsRepository struct {
	Settings    *entities.Settings
	LoadErr     error
	LoadedPaths []string
}

var _ repositories.SettingsRepository = (*StubSettingsRepository)(nil)

func (s *StubSettingsRepository) Load(path string) (*entities.Settings, error) {
	s.LoadedPaths = append(s.LoadedPaths, path)
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Settings == nil {
		return entities.DefaultSettings(), nil
	}
	return s.Settings, nil
}
