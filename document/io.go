package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format is a document serialization format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Unknown extensions
// default to YAML.
func FormatFor(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return JSON
	}
	return YAML
}

// Marshal encodes d in format f.
func (d *Document) Marshal(f Format) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if f == JSON {
		return append(data, '\n'), nil
	}

	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, fmt.Errorf("convert document to yaml: %w", err)
	}
	return out, nil
}

// Unmarshal decodes a document in format f.
func Unmarshal(data []byte, f Format) (*Document, error) {
	if f == YAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		data = converted
	}

	var d Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &d, nil
}

// Decode reads a document from r.
func Decode(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Unmarshal(data, f)
}

// Load reads and validates a document file.
func Load(filename string) (*Document, error) {
	// #nosec G304 - document paths come from the command line
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	d, err := Unmarshal(data, FormatFor(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid document: %w", filename, err)
	}
	return d, nil
}

// Save writes d to filename in the format implied by its extension.
func (d *Document) Save(filename string) error {
	data, err := d.Marshal(FormatFor(filename))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o600)
}
