package commands

import (
	"context"
	"fmt"

	"github.com/marshallshelly/quarry/cmd/quarry/output"
	"github.com/marshallshelly/quarry/cmd/quarry/tui"
	"github.com/marshallshelly/quarry/pkg/codegen"
	"github.com/marshallshelly/quarry/pkg/introspect"
	"github.com/spf13/cobra"
)

var (
	// Apply flags
	applyDryRun bool
	applyDrops  bool
	applyYes    bool
)

// applyCmd runs the generated DDL against a database
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the model's schema to a PostgreSQL database",
	Long: `Generate PostgreSQL DDL from the model and run it against a database.

The statements execute inside a single transaction: either the whole
schema applies or nothing does. The model's target dialect is ignored
here since the connection decides the dialect.

Examples:
  quarry apply --db postgres://localhost:5432/shop --dry-run
  quarry apply --db $DATABASE_URL --drops
  quarry apply --db $DATABASE_URL --yes    # Skip the confirmation prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply()
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&dbURL, "db", "", "Database connection URL (default from quarry.yaml)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the statements without executing them")
	applyCmd.Flags().BoolVar(&applyDrops, "drops", false, "Drop existing tables before creating them")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Skip the interactive confirmation")
}

func runApply() error {
	cfg, err := projectConfig()
	if err != nil {
		return err
	}
	url := dbURL
	if url == "" {
		url = cfg.Database
	}

	m, err := loadModel(cfg)
	if err != nil {
		return err
	}

	script, err := codegen.Generate(codegen.KindSQLPostgres, m, codegen.Options{IncludeDrops: applyDrops})
	if err != nil {
		return err
	}
	statements := introspect.SplitStatements(script)

	if len(statements) == 0 {
		output.Warning("The model produces no statements; nothing to apply")
		return nil
	}

	if applyDryRun {
		output.Section(fmt.Sprintf("DRY RUN - %d statement(s) for %s", len(statements), m.Name))
		for _, stmt := range statements {
			fmt.Printf("%s %s;\n", output.StatusIcon("pending"), stmt)
		}
		return nil
	}

	if url == "" {
		return fmt.Errorf("--db flag is required")
	}

	if !applyYes {
		confirmed, err := tui.RunConfirm(
			"Confirm Schema Apply",
			fmt.Sprintf("About to run %d statement(s) from model %q\nagainst %s.\n\nThis modifies the database schema.", len(statements), m.Name, url),
		)
		if err != nil {
			return err
		}
		if !confirmed {
			output.Info("Aborted, no statements were run")
			return nil
		}
	}

	ctx := context.Background()

	db, err := introspect.ConnectWithURL(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	applied, err := introspect.Apply(ctx, db, script)
	if err != nil {
		output.Error("Apply failed, transaction rolled back: %v", err)
		return err
	}

	output.Success("Applied %d statement(s) to %s", applied, url)
	return nil
}
