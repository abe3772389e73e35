// Package output renders decoded values as indented JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/Yogerlan/json-decoder/internal/fragment"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultIndent matches the original tool's 4-space JSON output.
const DefaultIndent = 4

// ErrUnsupportedFormat is the sentinel error for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat validates a format name from configuration.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: json, yaml)", ErrUnsupportedFormat, name)
	}
}

// Write renders value to w. Indent only applies to JSON; zero produces
// compact output. The value may contain fragment.Object, which keeps its
// member order in both encodings.
func Write(w io.Writer, value any, format Format, indent int) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, value, indent)
	case FormatYAML:
		return writeYAML(w, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeJSON(w io.Writer, value any, indent int) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
			return fmt.Errorf("indent JSON: %w", err)
		}
		data = buf.Bytes()
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, value any) error {
	data, err := yaml.Marshal(ordered(value))
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ordered converts the fragment value model into types goccy/go-yaml can
// encode while keeping object member order, using yaml.MapSlice instead of
// an unordered map.
func ordered(value any) any {
	switch v := value.(type) {
	case json.Number:
		return fragment.PlainNumber(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = ordered(elem)
		}
		return out
	case fragment.Object:
		out := make(yaml.MapSlice, 0, len(v))
		for _, m := range v {
			out = append(out, yaml.MapItem{Key: m.Key, Value: ordered(m.Value)})
		}
		return out
	default:
		return v
	}
}
