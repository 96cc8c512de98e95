package codec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"preset-manager/core/preset"
	"preset-manager/core/schema"

	"go.uber.org/zap"
)

// Codec converts between a preset file and a Configuration.
type Codec interface {
	// Load reads, validates and builds a configuration from path.
	Load(path string) (*preset.Configuration, error)
	// Parse builds a configuration from in-memory bytes; source names the
	// origin of data in errors.
	Parse(data []byte, source string) (*preset.Configuration, error)
	// Save validates cfg and writes it to path.
	Save(cfg *preset.Configuration, path string) error
	// Extension returns the canonical file extension including the dot.
	Extension() string
}

// Extensions lists every file extension handled by ForPath.
var Extensions = []string{".xml", ".json", ".yaml", ".yml"}

// ForPath selects a codec from the file extension of path.
func ForPath(path string, logger *zap.Logger) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xml":
		return NewMarkup(logger), nil
	case ".json":
		return NewJSON(logger), nil
	case ".yaml", ".yml":
		return NewYAML(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q (%s)", preset.ErrUnsupportedFormat, ext, path)
	}
}

// IsSupported reports whether ForPath has a codec for path.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

func readPreset(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", preset.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", preset.ErrIO, path, err)
	}
	return data, nil
}

func writePreset(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", preset.ErrIO, path, err)
	}
	return nil
}

// validate runs the schema validator on the canonical document of cfg.
func validate(cfg *preset.Configuration) error {
	return schema.Validate(cfg.Document())
}

// formatError reports bytes that do not parse. Syntax failures surface as
// validation failures with the parse detail chained.
func formatError(path string, err error) error {
	return fmt.Errorf("%w: %w: %s: %w", preset.ErrValidation, preset.ErrFormat, path, err)
}

// invalid reports a schema violation for path.
func invalid(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", preset.ErrValidation, path, err)
}
