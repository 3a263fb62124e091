package entities

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

const neutralCulture = "neutral"

// undefinedComponent marks a version component that was not written in the source string.
const undefinedComponent = -1

// Version is a four-part assembly version. Build and Revision may be undefined
// when parsed from a reference string with fewer components.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// NewVersion creates a fully defined version.
func NewVersion(major, minor, build, revision int) *Version {
	return &Version{Major: major, Minor: minor, Build: build, Revision: revision}
}

// String renders the defined components joined by dots.
func (it *Version) String() string {
	if it == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("%d", it.Major), fmt.Sprintf("%d", it.Minor)}
	if it.Build != undefinedComponent {
		parts = append(parts, fmt.Sprintf("%d", it.Build))
		if it.Revision != undefinedComponent {
			parts = append(parts, fmt.Sprintf("%d", it.Revision))
		}
	}
	return strings.Join(parts, ".")
}

// Equal reports whether both versions are unspecified or have identical components.
func (it *Version) Equal(other *Version) bool {
	if it == nil || other == nil {
		return it == nil && other == nil
	}
	return *it == *other
}

// Compare orders two versions, returning -1, 0 or +1. An unspecified version
// sorts before any specified one; undefined components count as zero.
func (it *Version) Compare(other *Version) int {
	switch {
	case it == nil && other == nil:
		return 0
	case it == nil:
		return -1
	case other == nil:
		return 1
	}

	if result := semver.Compare(it.semver(), other.semver()); result != 0 {
		return result
	}
	return compareInts(definedOrZero(it.Revision), definedOrZero(other.Revision))
}

// semver maps Major.Minor.Build onto a semantic version string; Revision has no
// semver counterpart and is compared separately.
func (it *Version) semver() string {
	return fmt.Sprintf("v%d.%d.%d", it.Major, it.Minor, definedOrZero(it.Build))
}

func definedOrZero(component int) int {
	if component == undefinedComponent {
		return 0
	}
	return component
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Identity is a parsed assembly identity. Only Name is mandatory; the other
// fields are "unspecified" when zero-valued.
type Identity struct {
	Name           string
	Version        *Version
	Culture        string
	PublicKeyToken []byte
}

// HasNeutralCulture reports whether the identity's culture is neutral-equivalent.
func (it Identity) HasNeutralCulture() bool {
	return IsNeutralCulture(it.Culture)
}

// HasPublicKeyToken reports whether a non-empty public key token is present.
func (it Identity) HasPublicKeyToken() bool {
	return len(it.PublicKeyToken) > 0
}

// FullName renders the fully qualified identity string, e.g.
// "Foo, Version=1.0.0.0, Culture=neutral, PublicKeyToken=31bf3856ad364e35".
// Version is omitted when unspecified.
func (it Identity) FullName() string {
	var builder strings.Builder
	builder.WriteString(it.Name)

	if it.Version != nil {
		builder.WriteString(", Version=")
		builder.WriteString(it.Version.String())
	}

	builder.WriteString(", Culture=")
	if it.HasNeutralCulture() {
		builder.WriteString(neutralCulture)
	} else {
		builder.WriteString(it.Culture)
	}

	builder.WriteString(", PublicKeyToken=")
	if it.HasPublicKeyToken() {
		builder.WriteString(hex.EncodeToString(it.PublicKeyToken))
	} else {
		builder.WriteString("null")
	}

	return builder.String()
}

// String implements fmt.Stringer.
func (it Identity) String() string {
	return it.FullName()
}

// IsNeutralCulture reports whether a culture value is absent, blank, or the literal "neutral".
func IsNeutralCulture(culture string) bool {
	return strings.TrimSpace(culture) == "" || culture == neutralCulture
}

// IdentityWithPath pairs an identity with the file it was read from.
type IdentityWithPath struct {
	Identity Identity
	Path     string
}
