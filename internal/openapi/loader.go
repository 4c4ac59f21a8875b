package openapi

import (
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Load reads and decodes an OpenAPI document. The format is chosen by
// file extension: .json decodes as JSON, .yaml and .yml as YAML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewUnreadableFileError(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path, data)
	case ".yaml", ".yml":
		return LoadYAML(path, data)
	default:
		return nil, NewUnsupportedFormatError(path)
	}
}

// LoadJSON decodes a JSON document. path is used for error reporting
// only.
func LoadJSON(path string, data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewMalformedDocumentError(path, err)
	}
	return &doc, nil
}

// LoadYAML decodes a YAML document. path is used for error reporting
// only.
func LoadYAML(path string, data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewMalformedDocumentError(path, err)
	}
	return &doc, nil
}
