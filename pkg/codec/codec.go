// Package codec reads and writes step documents as JSON or YAML.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ramsey-B/fern/pkg/steps"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// are YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format '%s'", format)
}

func Unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	}
	return fmt.Errorf("unknown format '%s'", format)
}

// ReadDocument loads a step document from path.
func ReadDocument(path string) (steps.Document, error) {
	var doc steps.Document

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("failed to read file: %w", err)
	}

	if err := Unmarshal(data, FormatFromPath(path), &doc); err != nil {
		return doc, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return doc, nil
}

// WriteDocument saves doc to path in the format its extension names.
func WriteDocument(path string, doc steps.Document) error {
	data, err := Marshal(doc, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadStep reads a document and rebuilds the step it describes.
func LoadStep(path string) (steps.Step, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return steps.FromDocument(doc)
}
