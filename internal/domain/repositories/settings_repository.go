package repositories

import "github.com/rios0rios0/repacktask/internal/domain/entities"

// SettingsRepository loads a settings file, overlaying it on the defaults.
type SettingsRepository interface {
	Load(path string) (*entities.Settings, error)
}
