//go:build unit

package entities_test

import (
	"testing"

	logger "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/test/domain/entitybuilders"
)

func TestResolveOutputSet(t *testing.T) {
	t.Parallel()

	foo := entitybuilders.NewIdentityBuilder().
		WithName("Foo").
		WithVersion(1, 0, 0, 0).
		WithPath("/out/Foo.dll").
		BuildIdentityWithPath()
	fooCopy := entitybuilders.NewIdentityBuilder().
		WithName("Foo").
		WithVersion(1, 0, 0, 0).
		WithPath("/out/sub/Foo.dll").
		BuildIdentityWithPath()
	bar := entitybuilders.NewIdentityBuilder().
		WithName("Bar").
		WithVersion(2, 0, 0, 0).
		WithPath("/out/Bar.dll").
		BuildIdentityWithPath()
	candidates := []entities.IdentityWithPath{foo, fooCopy, bar}

	t.Run("should keep the first matching candidate per reference in request order", func(t *testing.T) {
		t.Parallel()

		// given
		log, hook := logtest.NewNullLogger()
		taskLog := entities.NewTaskLog(log)

		// when
		result := entities.ResolveOutputSet([]string{"Bar", "Foo"}, candidates, "App.dll", taskLog)

		// then
		assert.Equal(t, []entities.IdentityWithPath{bar, foo}, result.Matches)
		assert.Equal(t, []string{"/out/Bar.dll", "/out/Foo.dll", "App.dll"}, result.Tokens())
		assert.False(t, taskLog.HasLoggedErrors())
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("should keep duplicates when two references match the same candidate", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		taskLog := entities.NewTaskLog(log)

		// when
		result := entities.ResolveOutputSet(
			[]string{"Foo", "Foo, Version=1.0.0.0"}, candidates, "App.dll", taskLog,
		)

		// then
		assert.Equal(t, []entities.IdentityWithPath{foo, foo}, result.Matches)
	})

	t.Run("should contribute nothing for references without a match", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		taskLog := entities.NewTaskLog(log)

		// when
		result := entities.ResolveOutputSet([]string{"Baz", "Foo, Version=9.9"}, candidates, "App.dll", taskLog)

		// then
		assert.Empty(t, result.Matches)
		assert.Equal(t, []string{"App.dll"}, result.Tokens())
		assert.False(t, taskLog.HasLoggedErrors())
	})

	t.Run("should log a parse failure and still resolve the other references", func(t *testing.T) {
		t.Parallel()

		// given
		log, hook := logtest.NewNullLogger()
		taskLog := entities.NewTaskLog(log)

		// when
		result := entities.ResolveOutputSet(
			[]string{"Foo, Version=abc", "Bar"}, candidates, "App.dll", taskLog,
		)

		// then
		assert.Equal(t, []entities.IdentityWithPath{bar}, result.Matches)
		assert.True(t, taskLog.HasLoggedErrors())
		require.Len(t, taskLog.Errors(), 1)
		assert.Contains(t, taskLog.Errors()[0], `"Foo, Version=abc"`)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logger.ErrorLevel, hook.LastEntry().Level)
	})

	t.Run("should return only the declared output for empty inputs", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		taskLog := entities.NewTaskLog(log)

		// when
		result := entities.ResolveOutputSet(nil, nil, "App.dll", taskLog)

		// then
		entries := result.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "App.dll", entries[0].Identity.Name)
		assert.Equal(t, "App.dll", entries[0].Path)
	})
}
