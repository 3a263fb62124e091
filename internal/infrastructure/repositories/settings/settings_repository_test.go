//go:build unit

package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/infrastructure/repositories/settings"
)

func expectedSettings() *entities.Settings {
	expected := entities.DefaultSettings()
	expected.Engine = entities.EngineSettings{Name: "ilmerge", Command: "mono tools/ILMerge.exe"}
	expected.Merge.TargetKind = "Dll"
	expected.Merge.Internalize = true
	expected.Merge.KeyFile = "keys/app.snk"
	expected.Merge.Parallel = false
	expected.Merge.LibraryPath = []string{"lib", "packages"}
	return expected
}

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSettingsRepository_Load(t *testing.T) {
	t.Parallel()

	t.Run("should load a YAML file on top of the defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, ".repacktask.yaml", `
engine:
  name: ilmerge
  command: mono tools/ILMerge.exe
merge:
  target_kind: Dll
  internalize: true
  key_file: keys/app.snk
  parallel: false
  library_path: [lib, packages]
`)
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		loaded, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(expectedSettings(), loaded))
	})

	t.Run("should load a TOML file on top of the defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "repacktask.toml", `
[engine]
name = "ilmerge"
command = "mono tools/ILMerge.exe"

[merge]
target_kind = "Dll"
internalize = true
key_file = "keys/app.snk"
parallel = false
library_path = ["lib", "packages"]
`)
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		loaded, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(expectedSettings(), loaded))
	})

	t.Run("should load an HCL file on top of the defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "repacktask.hcl", `
engine {
  name    = "ilmerge"
  command = "mono tools/ILMerge.exe"
}

merge {
  target_kind  = "Dll"
  internalize  = true
  key_file     = "keys/app.snk"
  parallel     = false
  library_path = ["lib", "packages"]
}
`)
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		loaded, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(expectedSettings(), loaded))
	})

	t.Run("should keep the defaults for an empty YAML file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "repacktask.yml", "")
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		loaded, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultSettings(), loaded)
	})

	t.Run("should reject unknown keys in every format", func(t *testing.T) {
		t.Parallel()

		// given
		files := map[string]string{
			"unknown.yaml": "merge:\n  paralel: true\n",
			"unknown.toml": "[merge]\nparalel = true\n",
			"unknown.hcl":  "merge {\n  paralel = true\n}\n",
		}
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		for name, content := range files {
			path := writeSettings(t, name, content)

			// when
			_, err := repo.Load(path)

			// then
			require.Error(t, err, name)
		}
	})

	t.Run("should reject a wrongly typed HCL attribute", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "typed.hcl", "merge {\n  internalize = \"yes\"\n}\n")
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		_, err := repo.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected a bool")
	})

	t.Run("should reject a file clearing the engine name", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "blank.yaml", "engine:\n  name: \"\"\n")
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		_, err := repo.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "engine.name is required")
	})

	t.Run("should reject an unsupported extension", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "repacktask.json", "{}")
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		_, err := repo.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported settings format")
	})

	t.Run("should return error for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		repo := settings.NewSettingsRepository(settings.NewDefaultDecoderRegistry())

		// when
		_, err := repo.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})
}
