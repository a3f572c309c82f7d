package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Parse decodes a model document from JSON and normalizes it.
func Parse(data []byte) (*DataModel, error) {
	var m DataModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return m.Normalize(), nil
}

// LoadFile reads and parses a single model JSON file.
func LoadFile(path string) (*DataModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadPath loads models from a file or directory. A directory is walked
// recursively and every .json file is parsed as a model. Returns the
// models in path order.
func LoadPath(path string) ([]*DataModel, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		m, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []*DataModel{m}, nil
	}

	var models []*DataModel
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		m, err := LoadFile(p)
		if err != nil {
			return err
		}
		models = append(models, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	if len(models) == 0 {
		return nil, fmt.Errorf("no model files found in %s", path)
	}
	return models, nil
}

// Marshal encodes a model as indented JSON, the format written by
// introspection and the init scaffold.
func Marshal(m *DataModel) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes a model as indented JSON to path, creating parent
// directories as needed.
func WriteFile(path string, m *DataModel) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	return nil
}
