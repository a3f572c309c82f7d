package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/render"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

// SQL renders the DDL script for one dialect: optional guarded DROP
// statements, one CREATE TABLE per entity, an ALTER TABLE pass adding a
// foreign key column per to-one relation, and finally CREATE INDEX
// statements for the model-level indexes. Drops are emitted in model
// order; the IF EXISTS guard keeps the script runnable against an empty
// database. Many-to-many relations emit no join table here even though
// the context configuration names one: the join table belongs to the
// ORM layer, which creates it from the UsingEntity mapping.
func SQL(m *model.DataModel, d model.Dialect, includeDrops bool) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Schema for %s (%s)\n", m.Name, d)
	if len(m.Entities) == 0 {
		b.WriteString("\n-- The model contains no entities; nothing to generate.\n")
		return b.String(), nil
	}

	if includeDrops {
		b.WriteString("\n")
		for i := range m.Entities {
			fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s;\n", qualifiedTable(d, &m.Entities[i]))
		}
	}

	for i := range m.Entities {
		b.WriteString("\n")
		if err := writeCreateTable(&b, d, &m.Entities[i]); err != nil {
			return "", err
		}
	}

	fks, err := relationStatements(m, d)
	if err != nil {
		return "", err
	}
	if len(fks) > 0 {
		b.WriteString("\n")
		for _, stmt := range fks {
			b.WriteString(stmt + "\n")
		}
	}

	if idx := indexStatements(m, d); len(idx) > 0 {
		b.WriteString("\n")
		for _, stmt := range idx {
			b.WriteString(stmt + "\n")
		}
	}
	return b.String(), nil
}

func qualifiedTable(d model.Dialect, e *model.Entity) string {
	table := render.QuoteIdent(d, e.TableName())
	if e.Schema != "" {
		return render.QuoteIdent(d, e.Schema) + "." + table
	}
	return table
}

func writeCreateTable(b *strings.Builder, d model.Dialect, e *model.Entity) error {
	cols := make([]string, 0, len(e.Fields))
	for i := range e.Fields {
		def, err := render.ColumnDef(d, &e.Fields[i])
		if err != nil {
			return err
		}
		cols = append(cols, "    "+def)
	}
	qt := qualifiedTable(d, e)
	if len(cols) == 0 {
		fmt.Fprintf(b, "CREATE TABLE %s ();\n", qt)
		return nil
	}
	fmt.Fprintf(b, "CREATE TABLE %s (\n%s\n);\n", qt, strings.Join(cols, ",\n"))
	return nil
}

// relationStatements renders one combined add-column-and-foreign-key
// ALTER per to-one relation. The new column is nullable and typed after
// the target's key so inserts into existing rows keep working.
func relationStatements(m *model.DataModel, d model.Dialect) ([]string, error) {
	var out []string
	for _, r := range m.Relations {
		if r.Cardinality == model.ManyToMany {
			continue
		}
		src := m.EntityByID(r.SourceEntityID)
		tgt := m.EntityByID(r.TargetEntityID)
		if src == nil || tgt == nil {
			continue
		}
		key := tgt.EffectiveKey()
		colType, err := typemap.SQL(d, &key)
		if err != nil {
			return nil, err
		}
		srcTable := qualifiedTable(d, src)
		tgtTable := qualifiedTable(d, tgt)
		col := render.QuoteIdent(d, fkName(tgt))
		refCol := render.QuoteIdent(d, key.Name)
		action := render.ActionSQL(r.OnDelete)

		var stmt string
		switch d {
		case model.SQLServer:
			stmt = fmt.Sprintf("ALTER TABLE %s ADD %s %s NULL FOREIGN KEY REFERENCES %s (%s) ON DELETE %s;",
				srcTable, col, colType, tgtTable, refCol, action)
		case model.MySQL:
			stmt = fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s NULL, ADD FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s;",
				srcTable, col, colType, col, tgtTable, refCol, action)
		default:
			stmt = fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s NULL REFERENCES %s (%s) ON DELETE %s;",
				srcTable, col, colType, tgtTable, refCol, action)
		}
		out = append(out, stmt)
	}
	return out, nil
}

func indexStatements(m *model.DataModel, d model.Dialect) []string {
	var out []string
	for _, idx := range m.Indexes {
		e := m.EntityByID(idx.EntityID)
		if e == nil {
			continue
		}
		var cols, parts []string
		for _, fid := range idx.FieldIDs {
			f := e.FieldByID(fid)
			if f == nil {
				continue
			}
			cols = append(cols, render.QuoteIdent(d, f.Name))
			parts = append(parts, f.Name)
		}
		if len(cols) == 0 {
			continue
		}
		name := idx.Name
		if name == "" {
			name = "IX_" + e.TableName() + "_" + strings.Join(parts, "_")
		}

		var stmt strings.Builder
		stmt.WriteString("CREATE ")
		if idx.IsUnique {
			stmt.WriteString("UNIQUE ")
		}
		if idx.IsClustered && d == model.SQLServer {
			stmt.WriteString("CLUSTERED ")
		}
		fmt.Fprintf(&stmt, "INDEX %s ON %s (%s);",
			render.QuoteIdent(d, name), qualifiedTable(d, e), strings.Join(cols, ", "))
		out = append(out, stmt.String())
	}
	return out
}
