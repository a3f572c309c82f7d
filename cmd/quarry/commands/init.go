package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/marshallshelly/quarry/cmd/quarry/output"
	"github.com/marshallshelly/quarry/pkg/config"
	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/spf13/cobra"
)

var (
	// Init flags
	initForce bool
)

// initCmd scaffolds a new project
var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a starter quarry.yaml and model file",
	Long: `Create a quarry.yaml and a starter model in the current directory.

The starter model has two related entities to edit from. Existing files
are left alone unless --force is given.

Examples:
  quarry init                  # Scaffold with the default model name
  quarry init Storefront       # Name the model
  quarry init --force          # Overwrite existing files`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(args)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
}

func runInit(args []string) error {
	name := "Sample"
	if len(args) == 1 {
		name = args[0]
	}

	cfg := config.Default()

	if !initForce {
		for _, path := range []string{config.DefaultFileName, cfg.Model} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	if err := cfg.Write(config.DefaultFileName); err != nil {
		return err
	}
	output.Success("Created %s", config.DefaultFileName)

	m := starterModel(name)
	if err := model.WriteFile(cfg.Model, m); err != nil {
		return err
	}
	output.Success("Created %s (%d entities)", cfg.Model, len(m.Entities))

	fmt.Println()
	output.Info("Edit %s, then run 'quarry generate --all'", cfg.Model)
	return nil
}

// starterModel builds a two-entity model to edit from: a Project with
// Tasks hanging off it.
func starterModel(name string) *model.DataModel {
	now := time.Now().UTC().Format(time.RFC3339)

	projectID := uuid.NewString()
	projectKeyID := uuid.NewString()
	taskID := uuid.NewString()
	taskKeyID := uuid.NewString()

	titleMax := 200
	doneDefault := "false"
	createdDefault := "now"

	m := &model.DataModel{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   "Starter model scaffolded by quarry init",
		Version:       "1.0.0",
		CreatedAt:     now,
		UpdatedAt:     now,
		TargetDialect: model.Postgres,
		Entities: []model.Entity{
			{
				ID:   projectID,
				Name: "Project",
				Fields: []model.Field{
					{
						ID:              projectKeyID,
						Name:            "Id",
						Type:            model.TypeGuid,
						IsRequired:      true,
						IsPrimaryKey:    true,
						IsAutoGenerated: true,
					},
					{
						ID:         uuid.NewString(),
						Name:       "Name",
						Type:       model.TypeString,
						IsRequired: true,
						MaxLength:  &titleMax,
					},
				},
			},
			{
				ID:   taskID,
				Name: "Task",
				Fields: []model.Field{
					{
						ID:              taskKeyID,
						Name:            "Id",
						Type:            model.TypeGuid,
						IsRequired:      true,
						IsPrimaryKey:    true,
						IsAutoGenerated: true,
					},
					{
						ID:         uuid.NewString(),
						Name:       "Title",
						Type:       model.TypeString,
						IsRequired: true,
						MaxLength:  &titleMax,
					},
					{
						ID:           uuid.NewString(),
						Name:         "IsDone",
						Type:         model.TypeBool,
						IsRequired:   true,
						DefaultValue: &doneDefault,
					},
					{
						ID:           uuid.NewString(),
						Name:         "CreatedAt",
						Type:         model.TypeDateTime,
						IsRequired:   true,
						DefaultValue: &createdDefault,
					},
				},
			},
		},
		Relations: []model.Relation{
			{
				ID:             uuid.NewString(),
				Name:           "project_tasks",
				SourceEntityID: taskID,
				TargetEntityID: projectID,
				Cardinality:    model.OneToMany,
				OnDelete:       model.Cascade,
			},
		},
	}
	return m.Normalize()
}
