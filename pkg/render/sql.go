package render

import (
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

// QuoteIdent quotes a table or column identifier for the dialect:
// brackets on SQL Server, backticks on MySQL, double quotes elsewhere.
func QuoteIdent(d model.Dialect, name string) string {
	switch d {
	case model.SQLServer:
		return "[" + name + "]"
	case model.MySQL:
		return "`" + name + "`"
	default:
		return "\"" + name + "\""
	}
}

// ColumnDef renders a complete CREATE TABLE column definition: quoted
// name, type, nullability, primary key and auto-increment handling, and
// a trailing DEFAULT clause. Auto-increment only applies to integer
// fields; on SQLite an auto-generated integer key collapses to the
// special INTEGER PRIMARY KEY AUTOINCREMENT form, which replaces the
// generic type and nullability clauses outright.
func ColumnDef(d model.Dialect, f *model.Field) (string, error) {
	name := QuoteIdent(d, f.Name)
	integer := f.Type == model.TypeInt || f.Type == model.TypeLong

	if d == model.SQLite && f.IsAutoGenerated && f.IsPrimaryKey && integer {
		return name + " INTEGER PRIMARY KEY AUTOINCREMENT", nil
	}

	typ, err := typemap.SQL(d, f)
	if err != nil {
		return "", err
	}
	if d == model.Postgres && f.IsAutoGenerated && integer {
		typ = "SERIAL"
		if f.Type == model.TypeLong {
			typ = "BIGSERIAL"
		}
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" ")
	b.WriteString(typ)
	if f.IsRequired || f.IsPrimaryKey {
		b.WriteString(" NOT NULL")
	} else {
		b.WriteString(" NULL")
	}
	if f.IsAutoGenerated && integer {
		switch d {
		case model.SQLServer:
			b.WriteString(" IDENTITY(1,1)")
		case model.MySQL:
			b.WriteString(" AUTO_INCREMENT")
		}
	}
	if f.IsPrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if !f.IsAutoGenerated {
		if def, ok := DefaultClause(d, f); ok {
			b.WriteString(" DEFAULT ")
			b.WriteString(def)
		}
	}
	return b.String(), nil
}

// DefaultClause renders the DEFAULT expression for a field's declared
// default token under the dialect. ok is false when nothing should be
// emitted: no token, an unrecognized DateTime token, or Guid generation
// on SQLite, which has no built-in uuid function.
func DefaultClause(d model.Dialect, f *model.Field) (string, bool) {
	if f.DefaultValue == nil {
		return "", false
	}
	token := *f.DefaultValue
	lower := strings.ToLower(token)

	switch f.Type {
	case model.TypeGuid:
		if lower == "newguid" || lower == "newid" {
			switch d {
			case model.SQLServer:
				return "NEWID()", true
			case model.Postgres:
				return "gen_random_uuid()", true
			case model.MySQL:
				return "(UUID())", true
			default:
				return "", false
			}
		}
		return "'" + token + "'", true
	case model.TypeDateTime:
		switch lower {
		case "now", "getdate":
			switch d {
			case model.SQLServer:
				return "GETDATE()", true
			case model.Postgres:
				return "NOW()", true
			default:
				return "CURRENT_TIMESTAMP", true
			}
		case "utcnow", "getutcdate":
			switch d {
			case model.SQLServer:
				return "GETUTCDATE()", true
			case model.Postgres:
				return "(NOW() AT TIME ZONE 'UTC')", true
			case model.MySQL:
				return "(UTC_TIMESTAMP)", true
			default:
				return "CURRENT_TIMESTAMP", true
			}
		}
		return "", false
	case model.TypeBool:
		switch lower {
		case "true":
			if d == model.Postgres || d == model.MySQL {
				return "TRUE", true
			}
			return "1", true
		case "false":
			if d == model.Postgres || d == model.MySQL {
				return "FALSE", true
			}
			return "0", true
		}
		return token, true
	case model.TypeString, model.TypeJSON:
		return "'" + strings.ReplaceAll(token, "'", "''") + "'", true
	}
	// Numeric and remaining types pass the token through verbatim; the
	// engine does not type-check user-supplied literals.
	return token, true
}

// ActionSQL maps a referential action onto its SQL keyword form for
// ON DELETE / ON UPDATE clauses.
func ActionSQL(a model.ReferentialAction) string {
	switch a {
	case model.Cascade:
		return "CASCADE"
	case model.SetNull:
		return "SET NULL"
	case model.Restrict:
		return "RESTRICT"
	default:
		return "NO ACTION"
	}
}
