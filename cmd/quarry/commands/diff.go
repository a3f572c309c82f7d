package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/marshallshelly/quarry/cmd/quarry/output"
	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/spf13/cobra"
)

// diffCmd compares two model revisions
var diffCmd = &cobra.Command{
	Use:   "diff <old.json> <new.json>",
	Short: "Show differences between two model revisions",
	Long: `Compare two revisions of a model file and show what changed.

Entities, fields, relations and indexes are matched by id, so a rename
shows up as a rename rather than a removal plus an addition.

Examples:
  quarry diff model.v1.json model.v2.json
  quarry diff model.v1.json model.v2.json --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiff(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(oldPath, newPath string) error {
	oldModel, err := model.LoadFile(oldPath)
	if err != nil {
		return err
	}
	newModel, err := model.LoadFile(newPath)
	if err != nil {
		return err
	}

	diff := model.Compare(oldModel, newModel)

	if !diff.HasChanges() {
		output.Success("No differences between %s and %s", oldPath, newPath)
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(diff)
	}

	output.Section("Model Differences")

	if diff.DialectChanged != "" {
		output.Info("Dialect changed: %s", diff.DialectChanged)
		fmt.Println()
	}

	if len(diff.EntitiesAdded) > 0 {
		output.Success("Entities added (%d):", len(diff.EntitiesAdded))
		for _, name := range diff.EntitiesAdded {
			fmt.Printf("  + %s\n", name)
		}
		fmt.Println()
	}

	if len(diff.EntitiesRemoved) > 0 {
		output.Warning("Entities removed (%d):", len(diff.EntitiesRemoved))
		for _, name := range diff.EntitiesRemoved {
			fmt.Printf("  - %s\n", name)
		}
		fmt.Println()
	}

	if len(diff.EntitiesModified) > 0 {
		output.Info("Entities modified (%d):", len(diff.EntitiesModified))
		for _, ed := range diff.EntitiesModified {
			fmt.Printf("  ~ %s\n", ed.Name)
			if ed.RenamedFrom != "" {
				fmt.Printf("      renamed from %s\n", ed.RenamedFrom)
			}
			if ed.TableChanged != "" {
				fmt.Printf("      table: %s\n", ed.TableChanged)
			}
			for _, name := range ed.FieldsAdded {
				fmt.Printf("      + field: %s\n", name)
			}
			for _, name := range ed.FieldsRemoved {
				fmt.Printf("      - field: %s\n", name)
			}
			for _, fd := range ed.FieldsModified {
				fmt.Printf("      ~ field: %s (%s)\n", fd.Name, fieldChangeLabel(fd))
			}
		}
		fmt.Println()
	}

	printNameList := func(icon, label string, names []string) {
		if len(names) == 0 {
			return
		}
		fmt.Printf("%s (%d):\n", label, len(names))
		for _, name := range names {
			fmt.Printf("  %s %s\n", icon, name)
		}
		fmt.Println()
	}

	printNameList("+", "Relations added", diff.RelationsAdded)
	printNameList("-", "Relations removed", diff.RelationsRemoved)
	printNameList("~", "Relations changed", diff.RelationsChanged)
	printNameList("+", "Indexes added", diff.IndexesAdded)
	printNameList("-", "Indexes removed", diff.IndexesRemoved)
	printNameList("~", "Indexes changed", diff.IndexesChanged)

	return nil
}

func fieldChangeLabel(fd model.FieldDiff) string {
	changes := []string{}
	if fd.RenamedFrom != "" {
		changes = append(changes, fmt.Sprintf("renamed from %s", fd.RenamedFrom))
	}
	if fd.TypeChanged != "" {
		changes = append(changes, fmt.Sprintf("type: %s", fd.TypeChanged))
	}
	if fd.RequiredChanged {
		changes = append(changes, "requiredness")
	}
	if fd.UniqueChanged {
		changes = append(changes, "uniqueness")
	}
	if fd.KeyChanged {
		changes = append(changes, "key")
	}
	if fd.ConstraintsChanged {
		changes = append(changes, "constraints")
	}
	if len(changes) == 0 {
		return "changed"
	}
	label := changes[0]
	for _, c := range changes[1:] {
		label += ", " + c
	}
	return label
}
