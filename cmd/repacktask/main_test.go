//go:build unit

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repacktask/test/infrastructure/repositorybuilders"
)

func TestRootCommand(t *testing.T) {
	t.Parallel()

	t.Run("should register every subcommand from the container", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()

		// when
		addSubcommands(root, injectAppContext())

		// then
		var names []string
		for _, sub := range root.Commands() {
			names = append(names, sub.Name())
		}
		assert.ElementsMatch(t, []string{"find-outputs", "qualified-names", "merge"}, names)
	})

	t.Run("should run find-outputs end to end", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, repositorybuilders.NewAssemblyImageBuilder().
			WithName("Lib").
			WithVersion(1, 0, 0, 0).
			WriteFile(filepath.Join(dir, "Lib.dll")))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "native.dll"), []byte("MZ"), 0o600))

		root := buildRootCommand()
		addSubcommands(root, injectAppContext())
		output := new(bytes.Buffer)
		root.SetOut(output)
		root.SetArgs([]string{
			"find-outputs", "-i", "Lib, Version=1.0.0.0", "--output-assembly", "App.dll", "--output-dir", dir,
		})

		// when
		err := root.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Lib.dll")+"\nApp.dll\n", output.String())
	})

	t.Run("should fail when a required flag is missing", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()
		addSubcommands(root, injectAppContext())
		root.SetOut(new(bytes.Buffer))
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"merge", "App.dll"})

		// when
		err := root.Execute()

		// then
		require.Error(t, err)
	})
}
