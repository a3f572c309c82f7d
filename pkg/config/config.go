// Package config loads the optional quarry.yaml project file. The file
// supplies defaults for the CLI; explicit flags always win over file
// values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file the CLI looks for in the working
// directory.
const DefaultFileName = "quarry.yaml"

// Config is the project-level configuration.
type Config struct {
	// Model is the path to the model JSON file, or a directory of
	// model files for commands that accept one.
	Model string `yaml:"model"`
	// Out is the directory generated artifacts are written to.
	Out string `yaml:"out"`
	// Artifacts narrows generation to these kinds; empty means all.
	Artifacts []string `yaml:"artifacts"`
	// Dialect overrides the model's target dialect for SQL output.
	Dialect string `yaml:"dialect"`
	// DropStatements prepends guarded DROP TABLE statements to SQL
	// artifacts.
	DropStatements bool `yaml:"dropStatements"`
	// Database is the connection URL used by introspect and apply.
	Database string `yaml:"database"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Model: "model.json",
		Out:   "generated",
	}
}

// Load reads a config file. A missing file is not an error: the
// defaults come back unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Write saves the configuration to path.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
