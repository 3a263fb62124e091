package settings

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// DecodeTOML decodes a TOML settings document, rejecting unknown keys.
func DecodeTOML(data []byte, _ string, target *entities.Settings) error {
	return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(target)
}
