// Package loader reads schemas from YAML or JSON files.
package loader

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ridoystarlord/modelgen/schema"
)

// Load reads the schema at path. The format follows the extension: .yaml
// and .yml use the authoring format, .json the full schema document.
func Load(fs afero.Fs, path string, f *schema.Factory) (schema.Schema, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("reading schema file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return DecodeYAML(data, f)
	case ".json":
		return DecodeJSON(data)
	default:
		return schema.Schema{}, fmt.Errorf("unsupported schema file extension %q", ext)
	}
}

// DecodeJSON decodes a schema document, ids included.
func DecodeJSON(data []byte) (schema.Schema, error) {
	var s schema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return schema.Schema{}, fmt.Errorf("unmarshalling JSON: %w", err)
	}
	if s.Models == nil {
		s.Models = []schema.Model{}
	}
	return s, nil
}

// EncodeJSON renders s as an indented schema document.
func EncodeJSON(s schema.Schema) ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// Save writes s to path in the format implied by its extension.
func Save(fs afero.Fs, path string, s schema.Schema) error {
	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = EncodeYAML(s)
	case ".json":
		data, err = EncodeJSON(s)
	default:
		return fmt.Errorf("unsupported schema file extension %q", ext)
	}
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing schema file: %w", err)
	}
	return nil
}
