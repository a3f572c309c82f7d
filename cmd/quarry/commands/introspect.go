package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/marshallshelly/quarry/cmd/quarry/output"
	"github.com/marshallshelly/quarry/pkg/introspect"
	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/spf13/cobra"
)

var (
	// Introspect flags
	dbURL      string
	outputFile string
)

// introspectCmd builds a model from a live database
var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Build a model from a PostgreSQL database",
	Long: `Introspect a PostgreSQL database and emit a model document.

Tables become entities, columns become typed fields, foreign keys become
relations, and secondary indexes are carried over. The resulting JSON can
be edited and fed back into 'quarry generate'.

Examples:
  quarry introspect --db postgres://localhost:5432/shop
  quarry introspect --db $DATABASE_URL -o model.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntrospect()
	},
}

func init() {
	rootCmd.AddCommand(introspectCmd)

	introspectCmd.Flags().StringVar(&dbURL, "db", "", "Database connection URL (default from quarry.yaml)")
	introspectCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the model to a file instead of stdout")
}

func runIntrospect() error {
	cfg, err := projectConfig()
	if err != nil {
		return err
	}
	url := dbURL
	if url == "" {
		url = cfg.Database
	}
	if url == "" {
		return fmt.Errorf("--db flag is required")
	}

	ctx := context.Background()

	db, err := introspect.ConnectWithURL(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	introspector := introspect.NewIntrospector(db.Pool())
	m, err := introspector.Introspect(ctx)
	if err != nil {
		return fmt.Errorf("failed to introspect database: %w", err)
	}

	if outputFile == "" {
		data, err := model.Marshal(m)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := model.WriteFile(outputFile, m); err != nil {
		return err
	}

	output.Success("Introspected %d entities, %d relations, %d indexes", len(m.Entities), len(m.Relations), len(m.Indexes))
	output.Muted("  Model: %s", outputFile)
	if verbose {
		for i := range m.Entities {
			e := &m.Entities[i]
			fmt.Printf("    %s (%d fields)\n", e.Name, len(e.Fields))
		}
	}
	return nil
}
