//go:build unit

package controllers_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/infrastructure/controllers"
	"github.com/rios0rios0/repacktask/test/domain/commanddoubles"
	"github.com/rios0rios0/repacktask/test/infrastructure/repositorydoubles"
)

func TestMergeController(t *testing.T) {
	t.Parallel()

	projectDir := filepath.Join(string(filepath.Separator), "src", "app")

	t.Run("should build the merge options from defaults and flags", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		settingsRepo := &repositorydoubles.StubSettingsRepository{}
		controller := controllers.NewMergeController(stub, settingsRepo)
		cmd, _ := newBoundCommand(t, controller,
			"--config", "repacktask.yaml",
			"--out", "bin/App.exe",
			"--project-dir", projectDir,
			"--target-kind", "Exe",
			"--key-file", "app.snk",
			"--lib", "lib",
			"--internalize",
		)

		// when
		err := controller.Execute(cmd, []string{"App.exe", "Lib.dll"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"repacktask.yaml"}, settingsRepo.LoadedPaths)
		assert.Equal(t, []string{"App.exe", "Lib.dll"}, stub.LastOpts.InputAssemblies)
		assert.Equal(t, "ilrepack", stub.LastOpts.EngineName)
		assert.Equal(t, "ilrepack", stub.LastOpts.EngineCommand)

		merge := stub.LastOpts.Merge
		assert.Equal(t, filepath.Join(projectDir, "bin", "App.exe"), merge.OutputFile)
		assert.Equal(t, entities.TargetKindExe, merge.TargetKind)
		assert.Equal(t, filepath.Join(projectDir, "app.snk"), merge.KeyFile)
		assert.True(t, merge.Internalize)
		assert.True(t, merge.DebugInfo)
		assert.True(t, merge.Parallel)
		assert.Empty(t, merge.ExcludeFile)
		assert.Equal(t, []string{".", filepath.Join(projectDir, "lib")}, merge.SearchDirectories)
	})

	t.Run("should let flags override the settings file", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Engine = entities.EngineSettings{Name: "ilmerge", Command: "mono ILMerge.exe"}
		settings.Merge.Parallel = false
		settings.Merge.Closed = true
		settings.Merge.LibraryPath = []string{"packages"}
		stub := &commanddoubles.StubMergeCommand{}
		controller := controllers.NewMergeController(stub, &repositorydoubles.StubSettingsRepository{Settings: settings})
		cmd, _ := newBoundCommand(t, controller,
			"--config", "repacktask.toml",
			"--out", "App.dll",
			"--project-dir", projectDir,
			"--debug-info=false",
			"--closed=false",
			"--engine-command", "ilmerge.exe",
		)

		// when
		err := controller.Execute(cmd, []string{"App.dll"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "ilmerge", stub.LastOpts.EngineName)
		assert.Equal(t, "ilmerge.exe", stub.LastOpts.EngineCommand)

		merge := stub.LastOpts.Merge
		assert.False(t, merge.DebugInfo)
		assert.False(t, merge.Closed)
		assert.False(t, merge.Parallel)
		assert.Equal(t, []string{".", filepath.Join(projectDir, "packages")}, merge.SearchDirectories)
	})

	t.Run("should run the selected engine by name when no command is configured", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		controller := controllers.NewMergeController(stub, &repositorydoubles.StubSettingsRepository{})
		cmd, _ := newBoundCommand(t, controller,
			"--config", "repacktask.yaml",
			"--out", "App.dll",
			"--project-dir", projectDir,
			"--engine", "ilmerge",
		)

		// when
		err := controller.Execute(cmd, []string{"App.dll"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "ilmerge", stub.LastOpts.EngineName)
		assert.Equal(t, "ilmerge", stub.LastOpts.EngineCommand)
	})

	t.Run("should fall back to SameAsPrimaryAssembly for an unknown target kind", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		controller := controllers.NewMergeController(stub, &repositorydoubles.StubSettingsRepository{})
		cmd, _ := newBoundCommand(t, controller,
			"--config", "repacktask.yaml", "--out", "App.dll", "--project-dir", projectDir, "--target-kind", "library",
		)

		// when
		err := controller.Execute(cmd, []string{"App.dll"})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.TargetKindSameAsPrimaryAssembly, stub.LastOpts.Merge.TargetKind)
	})

	t.Run("should require an output file", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		controller := controllers.NewMergeController(stub, &repositorydoubles.StubSettingsRepository{})
		cmd, _ := newBoundCommand(t, controller, "--config", "repacktask.yaml")

		// when
		err := controller.Execute(cmd, []string{"App.dll"})

		// then
		require.Error(t, err)
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should return error when the settings cannot be loaded", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		settingsRepo := &repositorydoubles.StubSettingsRepository{LoadErr: errors.New("bad yaml")}
		controller := controllers.NewMergeController(stub, settingsRepo)
		cmd, _ := newBoundCommand(t, controller, "--config", "repacktask.yaml", "--out", "App.dll")

		// when
		err := controller.Execute(cmd, []string{"App.dll"})

		// then
		require.Error(t, err)
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should return the merge failure", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{ExecuteErr: errors.New("ilrepack failed")}
		controller := controllers.NewMergeController(stub, &repositorydoubles.StubSettingsRepository{})
		cmd, _ := newBoundCommand(t, controller,
			"--config", "repacktask.yaml", "--out", "App.dll", "--project-dir", projectDir,
		)

		// when
		err := controller.Execute(cmd, []string{"App.dll"})

		// then
		require.ErrorIs(t, err, stub.ExecuteErr)
	})
}
