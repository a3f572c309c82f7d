package commands

import (
	"fmt"
	"os"

	"github.com/marshallshelly/quarry/pkg/config"
	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	modelPath  string
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Quarry - Code and schema generation from data models",
	Long: `Quarry turns a data model document into application code and database schemas.

From a single model JSON file it generates C# entity classes, EF Core context
configuration, DTOs, API controllers, repositories, services, SQL DDL for four
dialects, and an OpenAPI 3.0 document.

Features:
  - Eleven artifact kinds from one model file
  - SQL DDL for SQL Server, PostgreSQL, MySQL and SQLite
  - Database introspection back into a model document
  - Model validation and revision diffing
  - Interactive TUI and non-interactive CLI modes`,
	Version: "0.4.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&modelPath, "model", "m", "", "Path to the model JSON file (overrides quarry.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// projectConfig loads quarry.yaml from the working directory and applies
// global flag overrides. A missing file yields the defaults.
func projectConfig() (*config.Config, error) {
	cfg, err := config.Load(config.DefaultFileName)
	if err != nil {
		return nil, err
	}
	if modelPath != "" {
		cfg.Model = modelPath
	}
	return cfg, nil
}

// loadModel reads the model file named by the configuration.
func loadModel(cfg *config.Config) (*model.DataModel, error) {
	m, err := model.LoadFile(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return m, nil
}
