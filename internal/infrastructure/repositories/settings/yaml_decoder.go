package settings

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// DecodeYAML decodes a YAML settings document. Unknown keys are rejected and
// an empty document leaves target untouched.
func DecodeYAML(data []byte, _ string, target *entities.Settings) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
