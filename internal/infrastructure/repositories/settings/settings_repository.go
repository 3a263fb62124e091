package settings

import (
	"fmt"
	"os"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// SettingsRepository loads settings files through a DecoderRegistry.
type SettingsRepository struct {
	registry *DecoderRegistry
}

var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(registry *DecoderRegistry) *SettingsRepository {
	return &SettingsRepository{registry: registry}
}

// Load reads path, decodes it on top of entities.DefaultSettings and validates the result.
func (it *SettingsRepository) Load(path string) (*entities.Settings, error) {
	decoder, err := it.registry.ForFile(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := entities.DefaultSettings()
	if decodeErr := decoder(data, path, settings); decodeErr != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, decodeErr)
	}

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}
