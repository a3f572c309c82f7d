package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/marshallshelly/quarry/cmd/quarry/output"
	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/spf13/cobra"
)

// showCmd summarizes the model
var showCmd = &cobra.Command{
	Use:   "show [entity]",
	Short: "Show the model's entities, relations and indexes",
	Long: `Show a summary of the model: entities with their tables and keys,
relations, and indexes. Pass an entity name for its full field list.

Examples:
  quarry show                  # Summarize the whole model
  quarry show User             # Show one entity in detail
  quarry show --json           # Print the normalized model as JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(args)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(args []string) error {
	cfg, err := projectConfig()
	if err != nil {
		return err
	}
	m, err := loadModel(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		entity := m.EntityByName(args[0])
		if entity == nil {
			return fmt.Errorf("entity %q not found in model %s", args[0], m.Name)
		}
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entity)
		}
		printEntity(m, entity)
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}

	output.Section(fmt.Sprintf("Model: %s", m.Name))
	if m.Description != "" {
		output.Muted("%s", m.Description)
	}
	fmt.Printf("Version: %s\n", m.Version)
	fmt.Printf("Dialect: %s\n", m.TargetDialect)
	fmt.Printf("Entities: %d, Relations: %d, Indexes: %d\n",
		len(m.Entities), len(m.Relations), len(m.Indexes))
	fmt.Println()

	if len(m.Entities) > 0 {
		fmt.Println("Entities:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tTABLE\tFIELDS\tKEY")
		_, _ = fmt.Fprintln(w, "----\t-----\t------\t---")
		for i := range m.Entities {
			e := &m.Entities[i]
			key := e.EffectiveKey()
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s %s\n",
				e.ClassName(), qualifiedTableLabel(e), len(e.Fields), key.Name, key.Type)
		}
		_ = w.Flush()
		fmt.Println()
	}

	if len(m.Relations) > 0 {
		fmt.Println("Relations:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "SOURCE\tTARGET\tCARDINALITY\tON DELETE")
		_, _ = fmt.Fprintln(w, "------\t------\t-----------\t---------")
		for _, r := range m.Relations {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				entityLabel(m, r.SourceEntityID),
				entityLabel(m, r.TargetEntityID),
				r.Cardinality, r.OnDelete)
		}
		_ = w.Flush()
		fmt.Println()
	}

	if len(m.Indexes) > 0 {
		fmt.Println("Indexes:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tENTITY\tFIELDS\tUNIQUE")
		_, _ = fmt.Fprintln(w, "----\t------\t------\t------")
		for _, idx := range m.Indexes {
			name := idx.Name
			if name == "" {
				name = "(auto)"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%v\n",
				name, entityLabel(m, idx.EntityID), indexFieldLabel(m, idx), idx.IsUnique)
		}
		_ = w.Flush()
	}

	return nil
}

func printEntity(m *model.DataModel, e *model.Entity) {
	fmt.Printf("Entity: %s\n", e.ClassName())
	fmt.Println(strings.Repeat("=", len(e.ClassName())+8))
	fmt.Println()
	fmt.Printf("Table: %s\n", qualifiedTableLabel(e))
	fmt.Println()

	fmt.Println("Fields:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTYPE\tREQUIRED\tUNIQUE\tKEY\tDEFAULT")
	_, _ = fmt.Fprintln(w, "----\t----\t--------\t------\t---\t-------")
	for _, f := range e.Fields {
		defaultVal := ""
		if f.DefaultValue != nil {
			defaultVal = *f.DefaultValue
		}
		key := ""
		if f.IsPrimaryKey {
			key = "PK"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\t%s\n",
			f.Name, f.Type, f.IsRequired, f.IsUnique, key, defaultVal)
	}
	_ = w.Flush()
	fmt.Println()

	outgoing, incoming := m.RelationsOf(e.ID)
	if len(outgoing)+len(incoming) > 0 {
		fmt.Println("Relations:")
		for _, r := range outgoing {
			fmt.Printf("  → %s (%s, on delete %s)\n",
				entityLabel(m, r.TargetEntityID), r.Cardinality, r.OnDelete)
		}
		for _, r := range incoming {
			fmt.Printf("  ← %s (%s, on delete %s)\n",
				entityLabel(m, r.SourceEntityID), r.Cardinality, r.OnDelete)
		}
		fmt.Println()
	}

	if indexes := m.IndexesOf(e.ID); len(indexes) > 0 {
		fmt.Println("Indexes:")
		for _, idx := range indexes {
			unique := ""
			if idx.IsUnique {
				unique = "UNIQUE "
			}
			name := idx.Name
			if name == "" {
				name = "(auto)"
			}
			fmt.Printf("  %s%s (%s)\n", unique, name, indexFieldLabel(m, idx))
		}
	}
}

func qualifiedTableLabel(e *model.Entity) string {
	if e.Schema != "" {
		return e.Schema + "." + e.TableName()
	}
	return e.TableName()
}

func entityLabel(m *model.DataModel, entityID string) string {
	if e := m.EntityByID(entityID); e != nil {
		return e.ClassName()
	}
	return "(unknown)"
}

func indexFieldLabel(m *model.DataModel, idx model.Index) string {
	e := m.EntityByID(idx.EntityID)
	names := make([]string, 0, len(idx.FieldIDs))
	for _, id := range idx.FieldIDs {
		if e != nil {
			if f := e.FieldByID(id); f != nil {
				names = append(names, f.Name)
				continue
			}
		}
		names = append(names, "(unknown)")
	}
	return strings.Join(names, ", ")
}
