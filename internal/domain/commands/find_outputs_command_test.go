//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repacktask/internal/domain/commands"
	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/test/domain/entitybuilders"
	"github.com/rios0rios0/repacktask/test/infrastructure/repositorydoubles"
)

func TestFindOutputsCommand_Execute(t *testing.T) {
	t.Parallel()

	foo := entitybuilders.NewIdentityBuilder().
		WithName("Foo").
		WithVersion(1, 0, 0, 0).
		WithPublicKeyToken("31bf3856ad364e35").
		WithPath("bin/Foo.dll").
		BuildIdentityWithPath()
	bar := entitybuilders.NewIdentityBuilder().WithName("Bar").WithPath("bin/Bar.dll").BuildIdentityWithPath()
	tool := entitybuilders.NewIdentityBuilder().WithName("Tool").WithPath("tools/Tool.exe").BuildIdentityWithPath()

	newCommand := func(projects *repositorydoubles.StubProjectRepository) *commands.FindOutputsCommand {
		files := &repositorydoubles.StubAssemblyFileRepository{Files: map[string][]string{
			"bin":   {"bin/Bar.dll", "bin/Foo.dll", "bin/native.dll"},
			"tools": {"tools/Tool.exe"},
		}}
		identities := repositorydoubles.NewStubIdentityRepository(foo, bar, tool)
		return commands.NewFindOutputsCommand(files, identities, projects)
	}

	t.Run("should return the matches in request order followed by the declared output", func(t *testing.T) {
		t.Parallel()

		// given
		command := newCommand(&repositorydoubles.StubProjectRepository{})
		opts := commands.FindOutputsOptions{
			InputAssemblies:    []string{"Tool", "Foo, Version=1.0.0.0, PublicKeyToken=31bf3856ad364e35", "Missing"},
			OutputAssemblyName: "App.dll",
			OutputDirs:         []string{"bin", "tools"},
		}

		// when
		result, err := command.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff([]entities.IdentityWithPath{tool, foo}, result.Matches))
		assert.Equal(t, []string{"tools/Tool.exe", "bin/Foo.dll", "App.dll"}, result.Tokens())
	})

	t.Run("should request the references of the project too", func(t *testing.T) {
		t.Parallel()

		// given
		projects := &repositorydoubles.StubProjectRepository{References: []string{"Bar"}}
		command := newCommand(projects)
		opts := commands.FindOutputsOptions{
			InputAssemblies:    []string{"Foo"},
			ProjectFile:        "App.csproj",
			OutputAssemblyName: "App.dll",
			OutputDirs:         []string{"bin"},
		}

		// when
		result, err := command.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"App.csproj"}, projects.ReadProjects)
		assert.Equal(t, []string{"bin/Foo.dll", "bin/Bar.dll", "App.dll"}, result.Tokens())
	})

	t.Run("should still return the result when a reference cannot be parsed", func(t *testing.T) {
		t.Parallel()

		// given
		command := newCommand(&repositorydoubles.StubProjectRepository{})
		opts := commands.FindOutputsOptions{
			InputAssemblies:    []string{"Foo, Version=one", "Bar"},
			OutputAssemblyName: "App.dll",
			OutputDirs:         []string{"bin"},
		}

		// when
		result, err := command.Execute(context.Background(), opts)

		// then
		require.ErrorIs(t, err, entities.ErrTaskFailed)
		require.NotNil(t, result)
		assert.Equal(t, []string{"bin/Bar.dll", "App.dll"}, result.Tokens())
	})

	t.Run("should return error when an output directory cannot be listed", func(t *testing.T) {
		t.Parallel()

		// given
		command := newCommand(&repositorydoubles.StubProjectRepository{})
		opts := commands.FindOutputsOptions{
			InputAssemblies:    []string{"Foo"},
			OutputAssemblyName: "App.dll",
			OutputDirs:         []string{"bin", "obj"},
		}

		// when
		result, err := command.Execute(context.Background(), opts)

		// then
		require.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("should return error when the project cannot be read", func(t *testing.T) {
		t.Parallel()

		// given
		command := newCommand(&repositorydoubles.StubProjectRepository{Err: errors.New("bad xml")})
		opts := commands.FindOutputsOptions{
			ProjectFile:        "App.csproj",
			OutputAssemblyName: "App.dll",
			OutputDirs:         []string{"bin"},
		}

		// when
		_, err := command.Execute(context.Background(), opts)

		// then
		require.Error(t, err)
	})
}
