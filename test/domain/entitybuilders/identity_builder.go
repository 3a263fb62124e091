//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"encoding/hex"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// IdentityBuilder helps create test assembly identities with a fluent interface.
type IdentityBuilder struct {
	*testkit.BaseBuilder
	name           string
	version        *entities.Version
	culture        string
	publicKeyToken []byte
	path           string
}

// NewIdentityBuilder creates a new identity builder with sensible defaults:
// "Foo, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null" at "Foo.dll".
func NewIdentityBuilder() *IdentityBuilder {
	return &IdentityBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "Foo",
		version:     entities.NewVersion(1, 0, 0, 0),
		culture:     "",
		path:        "Foo.dll",
	}
}

// WithName sets the simple name.
func (b *IdentityBuilder) WithName(name string) *IdentityBuilder {
	b.name = name
	return b
}

// WithVersion sets a fully defined version.
func (b *IdentityBuilder) WithVersion(major, minor, build, revision int) *IdentityBuilder {
	b.version = entities.NewVersion(major, minor, build, revision)
	return b
}

// WithoutVersion leaves the version unspecified.
func (b *IdentityBuilder) WithoutVersion() *IdentityBuilder {
	b.version = nil
	return b
}

// WithCulture sets the culture.
func (b *IdentityBuilder) WithCulture(culture string) *IdentityBuilder {
	b.culture = culture
	return b
}

// WithPublicKeyToken sets the public key token from its hex form.
func (b *IdentityBuilder) WithPublicKeyToken(token string) *IdentityBuilder {
	decoded, err := hex.DecodeString(token)
	if err != nil {
		panic(err)
	}
	b.publicKeyToken = decoded
	return b
}

// WithPath sets the file path used by BuildIdentityWithPath.
func (b *IdentityBuilder) WithPath(path string) *IdentityBuilder {
	b.path = path
	return b
}

// Build creates the identity (satisfies testkit.Builder interface).
func (b *IdentityBuilder) Build() interface{} {
	return b.BuildIdentity()
}

// BuildIdentity creates the identity with a concrete return type.
func (b *IdentityBuilder) BuildIdentity() entities.Identity {
	var version *entities.Version
	if b.version != nil {
		copied := *b.version
		version = &copied
	}
	return entities.Identity{
		Name:           b.name,
		Version:        version,
		Culture:        b.culture,
		PublicKeyToken: append([]byte(nil), b.publicKeyToken...),
	}
}

// BuildIdentityWithPath creates the identity paired with its path.
func (b *IdentityBuilder) BuildIdentityWithPath() entities.IdentityWithPath {
	return entities.IdentityWithPath{Identity: b.BuildIdentity(), Path: b.path}
}

// Reset clears the builder state, allowing it to be reused.
func (b *IdentityBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "Foo"
	b.version = entities.NewVersion(1, 0, 0, 0)
	b.culture = ""
	b.publicKeyToken = nil
	b.path = "Foo.dll"
	return b
}

// Clone creates a deep copy of the IdentityBuilder.
func (b *IdentityBuilder) Clone() testkit.Builder {
	clone := &IdentityBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:           b.name,
		culture:        b.culture,
		publicKeyToken: append([]byte(nil), b.publicKeyToken...),
		path:           b.path,
	}
	if b.version != nil {
		copied := *b.version
		clone.version = &copied
	}
	return clone
}
