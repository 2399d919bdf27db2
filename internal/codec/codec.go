// Package codec decodes and encodes configuration documents in YAML or TOML.
// Callers pick the format from the file extension.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// MaxInputSize limits decoded input to prevent memory exhaustion (1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData           = errors.New("codec: nil or empty data")
	ErrNilDestination    = errors.New("codec: nil destination pointer")
	ErrInputTooLarge     = errors.New("codec: input exceeds maximum size")
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	ErrUnknownField      = errors.New("codec: unknown field")
)

// FormatForPath returns the format matching the file extension of path.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Extensions lists the file extensions searched for config names, in order.
func Extensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// DecodeStrict decodes data into v and rejects keys that v does not declare.
func DecodeStrict(data []byte, v any, format Format) error {
	if err := validateInput(data, v); err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
			return fmt.Errorf("codec: yaml: %w", err)
		}
		return nil
	case FormatTOML:
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return fmt.Errorf("codec: toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", "))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode renders v in the given format. Used by the CLI to print the
// effective configuration.
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: yaml: %w", err)
		}
		return out, nil
	case FormatTOML:
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(v); err != nil {
			return nil, fmt.Errorf("codec: toml: %w", err)
		}
		return []byte(sb.String()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
