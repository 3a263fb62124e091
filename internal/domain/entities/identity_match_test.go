//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/test/domain/entitybuilders"
)

func TestMatchesRequested(t *testing.T) {
	t.Parallel()

	candidate := entitybuilders.NewIdentityBuilder().
		WithName("Foo").
		WithVersion(1, 2, 3, 4).
		WithPublicKeyToken("31bf3856ad364e35").
		BuildIdentity()

	t.Run("should match a bare name against a fully specified candidate", func(t *testing.T) {
		t.Parallel()

		// given
		requested, err := entities.ParseIdentity("Foo")
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, candidate)

		// then
		assert.True(t, matched)
	})

	t.Run("should match an identical fully qualified reference", func(t *testing.T) {
		t.Parallel()

		// given
		requested, err := entities.ParseIdentity(candidate.FullName())
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, candidate)

		// then
		assert.True(t, matched)
	})

	t.Run("should not match a different name or a name differing only in case", func(t *testing.T) {
		t.Parallel()

		// given
		other, err := entities.ParseIdentity("Bar")
		require.NoError(t, err)
		lower, err := entities.ParseIdentity("foo")
		require.NoError(t, err)

		// when
		otherMatched := entities.MatchesRequested(other, candidate)
		lowerMatched := entities.MatchesRequested(lower, candidate)

		// then
		assert.False(t, otherMatched)
		assert.False(t, lowerMatched)
	})

	t.Run("should not match a different version", func(t *testing.T) {
		t.Parallel()

		// given
		requested, err := entities.ParseIdentity("Foo, Version=1.2.3.5")
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, candidate)

		// then
		assert.False(t, matched)
	})

	t.Run("should not match a partial version against a four-part candidate version", func(t *testing.T) {
		t.Parallel()

		// given
		requested, err := entities.ParseIdentity("Foo, Version=1.2")
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, candidate)

		// then
		assert.False(t, matched)
	})

	t.Run("should not match a requested token against a candidate without one", func(t *testing.T) {
		t.Parallel()

		// given
		unsigned := entitybuilders.NewIdentityBuilder().WithName("Foo").BuildIdentity()
		requested, err := entities.ParseIdentity("Foo, PublicKeyToken=31bf3856ad364e35")
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, unsigned)

		// then
		assert.False(t, matched)
	})

	t.Run("should be directional when the requested side is more specific", func(t *testing.T) {
		t.Parallel()

		// given
		partial := entitybuilders.NewIdentityBuilder().WithName("Foo").WithoutVersion().BuildIdentity()

		// when
		forward := entities.MatchesRequested(partial, candidate)
		backward := entities.MatchesRequested(candidate, partial)

		// then
		assert.True(t, forward)
		assert.False(t, backward)
	})

	t.Run("should not match a neutral request against a culture-specific candidate", func(t *testing.T) {
		t.Parallel()

		// given
		satellite := entitybuilders.NewIdentityBuilder().WithName("Foo").WithCulture("de-DE").BuildIdentity()
		requested, err := entities.ParseIdentity("Foo, Culture=neutral")
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, satellite)

		// then
		assert.False(t, matched)
	})

	t.Run("should not match a bare name against a culture-specific candidate", func(t *testing.T) {
		t.Parallel()

		// given
		satellite := entitybuilders.NewIdentityBuilder().WithName("Foo").WithCulture("de-DE").BuildIdentity()
		requested, err := entities.ParseIdentity("Foo")
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, satellite)

		// then
		assert.False(t, matched)
	})

	t.Run("should match an identical specific culture", func(t *testing.T) {
		t.Parallel()

		// given
		satellite := entitybuilders.NewIdentityBuilder().WithName("Foo").WithCulture("de-DE").BuildIdentity()
		requested, err := entities.ParseIdentity("Foo, Culture=de-DE")
		require.NoError(t, err)

		// when
		matched := entities.MatchesRequested(requested, satellite)

		// then
		assert.True(t, matched)
	})
}

func TestCulturesEquivalent(t *testing.T) {
	t.Parallel()

	t.Run("should treat blank, whitespace and neutral as equivalent", func(t *testing.T) {
		t.Parallel()

		// given
		neutral := []string{"", "  ", "neutral"}

		for _, first := range neutral {
			for _, second := range neutral {
				// when
				equivalent := entities.CulturesEquivalent(first, second)

				// then
				assert.True(t, equivalent, "%q vs %q", first, second)
			}
		}
	})

	t.Run("should evaluate neutrality of each operand independently", func(t *testing.T) {
		t.Parallel()

		// given
		first, second := "", "en-US"

		// when
		forward := entities.CulturesEquivalent(first, second)
		backward := entities.CulturesEquivalent(second, first)

		// then
		assert.False(t, forward)
		assert.False(t, backward)
	})

	t.Run("should compare specific cultures by exact value", func(t *testing.T) {
		t.Parallel()

		// given
		first, second := "en-US", "en-us"

		// when
		equal := entities.CulturesEquivalent(first, first)
		differentCase := entities.CulturesEquivalent(first, second)

		// then
		assert.True(t, equal)
		assert.False(t, differentCase)
	})
}
