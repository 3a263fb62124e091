package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/repacktask/internal/domain/repositories"
	fsRepo "github.com/rios0rios0/repacktask/internal/infrastructure/repositories/filesystem"
	engineRepo "github.com/rios0rios0/repacktask/internal/infrastructure/repositories/mergeengine"
	mdRepo "github.com/rios0rios0/repacktask/internal/infrastructure/repositories/metadata"
	msbuildRepo "github.com/rios0rios0/repacktask/internal/infrastructure/repositories/msbuild"
	settingsRepo "github.com/rios0rios0/repacktask/internal/infrastructure/repositories/settings"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register engine registry with all merge engine factories
	if err := container.Provide(func() *EngineRegistry {
		reg := NewEngineRegistry()
		reg.Register("ilrepack", engineRepo.NewILRepackRepository)
		reg.Register("ilmerge", engineRepo.NewILMergeRepository)
		return reg
	}); err != nil {
		return err
	}

	// Bind port interfaces to their adapters
	if err := container.Provide(func() domainRepos.IdentityRepository {
		return mdRepo.NewIdentityRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.AssemblyFileRepository {
		return fsRepo.NewAssemblyFileRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.ProjectRepository {
		return msbuildRepo.NewProjectRepository()
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.SettingsRepository {
		return settingsRepo.NewSettingsRepository(settingsRepo.NewDefaultDecoderRegistry())
	}); err != nil {
		return err
	}

	return nil
}
