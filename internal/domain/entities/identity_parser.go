package entities

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	minVersionComponents = 2
	maxVersionComponents = 4
	// maxVersionComponent is the largest value assembly metadata can store in a version field.
	maxVersionComponent = 0xFFFF
)

// ParseIdentity parses a reference string of the form
//
//	Name[, Version=Major.Minor[.Build[.Revision]]][, Culture=neutral|<name>][, PublicKeyToken=null|<hex>]
//
// Name must come first; the remaining pairs may appear in any order and their
// keys are case-insensitive. Unknown keys are ignored. Every failure wraps
// ErrInvalidReference.
func ParseIdentity(reference string) (Identity, error) {
	parts := strings.Split(reference, ",")

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Identity{}, fmt.Errorf("%w: missing name in %q", ErrInvalidReference, reference)
	}

	identity := Identity{Name: name}
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return Identity{}, fmt.Errorf("%w: expected key=value, got %q", ErrInvalidReference, strings.TrimSpace(part))
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "version":
			version, err := parseVersion(value)
			if err != nil {
				return Identity{}, err
			}
			identity.Version = version
		case "culture":
			identity.Culture = value
		case "publickeytoken":
			token, err := parsePublicKeyToken(value)
			if err != nil {
				return Identity{}, err
			}
			identity.PublicKeyToken = token
		}
	}

	return identity, nil
}

func parseVersion(value string) (*Version, error) {
	components := strings.Split(value, ".")
	if len(components) < minVersionComponents || len(components) > maxVersionComponents {
		return nil, fmt.Errorf("%w: version %q must have 2 to 4 components", ErrInvalidReference, value)
	}

	numbers := []int{undefinedComponent, undefinedComponent, undefinedComponent, undefinedComponent}
	for i, component := range components {
		number, err := strconv.Atoi(component)
		if err != nil || number < 0 || number > maxVersionComponent || strings.ContainsAny(component, "+-") {
			return nil, fmt.Errorf("%w: invalid version component %q in %q", ErrInvalidReference, component, value)
		}
		numbers[i] = number
	}

	return &Version{Major: numbers[0], Minor: numbers[1], Build: numbers[2], Revision: numbers[3]}, nil
}

func parsePublicKeyToken(value string) ([]byte, error) {
	if value == "null" {
		return nil, nil
	}
	token, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: public key token %q is not hex: %v", ErrInvalidReference, value, err)
	}
	return token, nil
}
