package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/marshallshelly/quarry/cmd/quarry/output"
	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/spf13/cobra"
)

// validateCmd lints model files
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate model files",
	Long: `Validate one model file or a directory of model files.

Issues are reported at three severities. Errors mean an artifact would
silently omit something (a dangling relation, an index on an unknown
field); warnings and notes flag suspicious but generatable models.
The exit code is non-zero only when errors are found.

Examples:
  quarry validate                      # Validate the configured model
  quarry validate ./models             # Validate every .json file in a directory
  quarry validate --json               # Machine-readable issue list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// modelIssues pairs a model with its lint findings for --json output.
type modelIssues struct {
	Model  string        `json:"model"`
	Issues []model.Issue `json:"issues"`
}

func runValidate(args []string) error {
	cfg, err := projectConfig()
	if err != nil {
		return err
	}

	path := cfg.Model
	if len(args) == 1 {
		path = args[0]
	}

	models, err := model.LoadPath(path)
	if err != nil {
		return err
	}

	var results []modelIssues
	errorCount := 0
	for _, m := range models {
		issues := model.Validate(m)
		results = append(results, modelIssues{Model: m.Name, Issues: issues})
		for _, issue := range issues {
			if issue.Severity == model.SeverityError {
				errorCount++
			}
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, result := range results {
			if len(result.Issues) == 0 {
				output.Success("%s: no issues", result.Model)
				continue
			}
			output.Section(fmt.Sprintf("Model: %s", result.Model))
			for _, issue := range result.Issues {
				fmt.Printf("  %s %s\n", output.SeverityIcon(string(issue.Severity)), issue)
			}
		}
		fmt.Println()
	}

	if errorCount > 0 {
		return fmt.Errorf("validation failed with %d error(s)", errorCount)
	}
	if !jsonOutput {
		output.Success("Validated %d model(s)", len(models))
	}
	return nil
}
