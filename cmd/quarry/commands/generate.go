package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marshallshelly/quarry/cmd/quarry/output"
	"github.com/marshallshelly/quarry/cmd/quarry/tui"
	"github.com/marshallshelly/quarry/pkg/codegen"
	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/spf13/cobra"
)

var (
	// Generate flags
	outDir      string
	artifacts   []string
	genAll      bool
	genDialect  string
	withDrops   bool
	interactive bool
	toStdout    bool
)

// generateCmd generates artifacts from the model
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate artifacts from the model",
	Long: `Generate code and schema artifacts from the model file.

Each artifact kind is written to its own file in the output directory.
Run 'quarry kinds' to list the available artifact kinds.

Examples:
  quarry generate --all                         # Generate every artifact kind
  quarry generate -a entity-classes -a dtos     # Generate selected kinds
  quarry generate -a sql-postgres --stdout      # Print one artifact to stdout
  quarry generate --all --dialect mysql         # Override the model's dialect
  quarry generate --interactive                 # Pick artifacts in the TUI`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default from quarry.yaml)")
	generateCmd.Flags().StringArrayVarP(&artifacts, "artifact", "a", nil, "Artifact kind to generate (repeatable)")
	generateCmd.Flags().BoolVar(&genAll, "all", false, "Generate every artifact kind")
	generateCmd.Flags().StringVarP(&genDialect, "dialect", "d", "", "Override the model's target dialect for SQL artifacts")
	generateCmd.Flags().BoolVar(&withDrops, "drops", false, "Prepend guarded DROP TABLE statements to SQL artifacts")
	generateCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick and preview artifacts in the TUI")
	generateCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write a single artifact to stdout instead of a file")
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := projectConfig()
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Out = outDir
	}
	if genDialect != "" {
		cfg.Dialect = genDialect
	}
	if cmd.Flags().Changed("drops") {
		cfg.DropStatements = withDrops
	}
	if len(artifacts) > 0 {
		cfg.Artifacts = artifacts
	}

	m, err := loadModel(cfg)
	if err != nil {
		return err
	}

	if cfg.Dialect != "" {
		d := model.Dialect(cfg.Dialect)
		if !model.ValidDialect(d) {
			return fmt.Errorf("unknown dialect %q (one of: %s)", cfg.Dialect, dialectList())
		}
		m.TargetDialect = d
	}

	// Lint the model first. Generators skip unresolvable references, so
	// errors don't stop generation, but the user should see them.
	issues := model.Validate(m)
	for _, issue := range issues {
		switch issue.Severity {
		case model.SeverityError:
			output.Warning("%s", issue)
		case model.SeverityWarning:
			if verbose {
				output.Warning("%s", issue)
			}
		default:
			if verbose {
				output.Muted("  %s", issue)
			}
		}
	}
	if model.HasErrors(issues) {
		output.Info("Artifacts omit anything the model errors make unresolvable.")
		fmt.Println()
	}

	kinds, err := resolveKinds(cfg.Artifacts)
	if err != nil {
		return err
	}

	opts := codegen.Options{IncludeDrops: cfg.DropStatements}

	if interactive {
		return tui.RunGenerateUI(m, cfg.Out, kinds, opts)
	}

	// Single artifact to stdout: no styling, just the content.
	if toStdout {
		if len(kinds) != 1 {
			return fmt.Errorf("--stdout requires exactly one artifact kind, got %d", len(kinds))
		}
		content, err := codegen.Generate(kinds[0], m, opts)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	}

	if err := os.MkdirAll(cfg.Out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	output.Section(fmt.Sprintf("Generating %d artifact(s) from %s", len(kinds), m.Name))

	for _, kind := range kinds {
		content, err := codegen.Generate(kind, m, opts)
		if err != nil {
			output.Error("%s: %v", kind, err)
			return err
		}

		path := filepath.Join(cfg.Out, kind.FileName())
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		output.Success("%s → %s", kind, path)
	}

	fmt.Println()
	output.Success("Wrote %d artifact(s) to %s", len(kinds), cfg.Out)
	return nil
}

// resolveKinds turns artifact names from flags or quarry.yaml into kinds.
// An empty selection (or --all) means every registered kind.
func resolveKinds(names []string) ([]codegen.Kind, error) {
	if genAll || len(names) == 0 {
		return codegen.Kinds(), nil
	}

	known := make(map[codegen.Kind]bool)
	for _, k := range codegen.Kinds() {
		known[k] = true
	}

	kinds := make([]codegen.Kind, 0, len(names))
	seen := make(map[codegen.Kind]bool)
	for _, name := range names {
		kind := codegen.Kind(name)
		if !known[kind] {
			return nil, fmt.Errorf("unknown artifact kind %q (run 'quarry kinds' to list them)", name)
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func dialectList() string {
	s := ""
	for i, d := range model.Dialects() {
		if i > 0 {
			s += ", "
		}
		s += string(d)
	}
	return s
}
