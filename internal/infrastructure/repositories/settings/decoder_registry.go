package settings

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

// Decoder overlays the contents of a settings file onto target.
type Decoder func(data []byte, filename string, target *entities.Settings) error

// DecoderRegistry maps file extensions to settings decoders.
type DecoderRegistry struct {
	decoders map[string]Decoder
}

// NewDecoderRegistry creates an empty decoder registry.
func NewDecoderRegistry() *DecoderRegistry {
	return &DecoderRegistry{
		decoders: make(map[string]Decoder),
	}
}

// NewDefaultDecoderRegistry creates a registry knowing the YAML, TOML and HCL formats.
func NewDefaultDecoderRegistry() *DecoderRegistry {
	registry := NewDecoderRegistry()
	registry.Register(".yaml", DecodeYAML)
	registry.Register(".yml", DecodeYAML)
	registry.Register(".toml", DecodeTOML)
	registry.Register(".hcl", DecodeHCL)
	return registry
}

// Register adds a decoder for the given extension (including the leading dot).
func (r *DecoderRegistry) Register(extension string, decoder Decoder) {
	r.decoders[strings.ToLower(extension)] = decoder
}

// ForFile returns the decoder matching the extension of filename.
func (r *DecoderRegistry) ForFile(filename string) (Decoder, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	decoder, ok := r.decoders[extension]
	if !ok {
		return nil, fmt.Errorf("unsupported settings format %q for %q", extension, filename)
	}
	return decoder, nil
}
