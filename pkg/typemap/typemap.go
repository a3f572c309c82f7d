// Package typemap holds the fixed type tables that translate model field
// types into C# property types, SQL column types per dialect, and OpenAPI
// schema type/format pairs. Every table is total over the field type enum;
// an unmapped type is the one condition generators surface as a hard error,
// since it means the model document and the engine disagree about the
// schema version.
package typemap

import (
	"errors"
	"fmt"

	"github.com/marshallshelly/quarry/pkg/model"
)

// ErrUnmappedType is returned when a field type falls outside the closed
// enum the type tables cover.
var ErrUnmappedType = errors.New("unmapped field type")

// CSharp returns the C# property type for a field type. json fields are
// stored as raw string payloads on the C# side.
func CSharp(t model.FieldType) (string, error) {
	switch t {
	case model.TypeString:
		return "string", nil
	case model.TypeInt:
		return "int", nil
	case model.TypeLong:
		return "long", nil
	case model.TypeDecimal:
		return "decimal", nil
	case model.TypeDouble:
		return "double", nil
	case model.TypeFloat:
		return "float", nil
	case model.TypeBool:
		return "bool", nil
	case model.TypeDateTime:
		return "DateTime", nil
	case model.TypeDateOnly:
		return "DateOnly", nil
	case model.TypeTimeOnly:
		return "TimeOnly", nil
	case model.TypeGuid:
		return "Guid", nil
	case model.TypeBytes:
		return "byte[]", nil
	case model.TypeJSON:
		return "string", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnmappedType, t)
}

// IsReference reports whether the C# representation of t is a reference
// type. Reference types carry a [Required] annotation instead of relying
// on value-type non-nullability.
func IsReference(t model.FieldType) bool {
	switch t {
	case model.TypeString, model.TypeBytes, model.TypeJSON:
		return true
	}
	return false
}

// OpenAPI returns the JSON schema type and format for a field type. An
// empty format means the type carries no format qualifier.
func OpenAPI(t model.FieldType) (typ, format string, err error) {
	switch t {
	case model.TypeString:
		return "string", "", nil
	case model.TypeInt:
		return "integer", "int32", nil
	case model.TypeLong:
		return "integer", "int64", nil
	case model.TypeDecimal:
		return "number", "double", nil
	case model.TypeDouble:
		return "number", "double", nil
	case model.TypeFloat:
		return "number", "float", nil
	case model.TypeBool:
		return "boolean", "", nil
	case model.TypeDateTime:
		return "string", "date-time", nil
	case model.TypeDateOnly:
		return "string", "date", nil
	case model.TypeTimeOnly:
		return "string", "time", nil
	case model.TypeGuid:
		return "string", "uuid", nil
	case model.TypeBytes:
		return "string", "byte", nil
	case model.TypeJSON:
		return "object", "", nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnmappedType, t)
}

// DecimalArgs resolves the precision/scale pair for a decimal field.
// Missing precision falls back to (18, 2); a present precision with no
// scale uses scale 0. explicit reports whether the model declared a
// precision at all, which gates precision configuration in the mapping
// output.
func DecimalArgs(f *model.Field) (precision, scale int, explicit bool) {
	if f.Precision == nil {
		return 18, 2, false
	}
	precision = *f.Precision
	if f.Scale != nil {
		scale = *f.Scale
	}
	return precision, scale, true
}

// SQL returns the column type for f under the given dialect, with
// maxLength and precision/scale applied. Auto-increment type rewrites
// (SERIAL and friends) are the column renderer's concern, not the type
// table's.
func SQL(d model.Dialect, f *model.Field) (string, error) {
	switch d {
	case model.SQLServer:
		return sqlServerType(f)
	case model.Postgres:
		return postgresType(f)
	case model.MySQL:
		return mysqlType(f)
	case model.SQLite:
		return sqliteType(f)
	}
	return "", fmt.Errorf("unknown dialect: %q", d)
}

func sqlServerType(f *model.Field) (string, error) {
	switch f.Type {
	case model.TypeString:
		if f.MaxLength != nil {
			return fmt.Sprintf("NVARCHAR(%d)", *f.MaxLength), nil
		}
		return "NVARCHAR(MAX)", nil
	case model.TypeInt:
		return "INT", nil
	case model.TypeLong:
		return "BIGINT", nil
	case model.TypeDecimal:
		p, s, _ := DecimalArgs(f)
		return fmt.Sprintf("DECIMAL(%d, %d)", p, s), nil
	case model.TypeDouble:
		return "FLOAT", nil
	case model.TypeFloat:
		return "REAL", nil
	case model.TypeBool:
		return "BIT", nil
	case model.TypeDateTime:
		return "DATETIME2", nil
	case model.TypeDateOnly:
		return "DATE", nil
	case model.TypeTimeOnly:
		return "TIME", nil
	case model.TypeGuid:
		return "UNIQUEIDENTIFIER", nil
	case model.TypeBytes:
		return "VARBINARY(MAX)", nil
	case model.TypeJSON:
		return "NVARCHAR(MAX)", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnmappedType, f.Type)
}

func postgresType(f *model.Field) (string, error) {
	switch f.Type {
	case model.TypeString:
		if f.MaxLength != nil {
			return fmt.Sprintf("VARCHAR(%d)", *f.MaxLength), nil
		}
		return "TEXT", nil
	case model.TypeInt:
		return "INTEGER", nil
	case model.TypeLong:
		return "BIGINT", nil
	case model.TypeDecimal:
		p, s, _ := DecimalArgs(f)
		return fmt.Sprintf("NUMERIC(%d, %d)", p, s), nil
	case model.TypeDouble:
		return "DOUBLE PRECISION", nil
	case model.TypeFloat:
		return "REAL", nil
	case model.TypeBool:
		return "BOOLEAN", nil
	case model.TypeDateTime:
		return "TIMESTAMP", nil
	case model.TypeDateOnly:
		return "DATE", nil
	case model.TypeTimeOnly:
		return "TIME", nil
	case model.TypeGuid:
		return "UUID", nil
	case model.TypeBytes:
		return "BYTEA", nil
	case model.TypeJSON:
		return "JSONB", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnmappedType, f.Type)
}

func mysqlType(f *model.Field) (string, error) {
	switch f.Type {
	case model.TypeString:
		if f.MaxLength != nil {
			return fmt.Sprintf("VARCHAR(%d)", *f.MaxLength), nil
		}
		return "TEXT", nil
	case model.TypeInt:
		return "INT", nil
	case model.TypeLong:
		return "BIGINT", nil
	case model.TypeDecimal:
		p, s, _ := DecimalArgs(f)
		return fmt.Sprintf("DECIMAL(%d, %d)", p, s), nil
	case model.TypeDouble:
		return "DOUBLE", nil
	case model.TypeFloat:
		return "FLOAT", nil
	case model.TypeBool:
		return "TINYINT(1)", nil
	case model.TypeDateTime:
		return "DATETIME", nil
	case model.TypeDateOnly:
		return "DATE", nil
	case model.TypeTimeOnly:
		return "TIME", nil
	case model.TypeGuid:
		return "CHAR(36)", nil
	case model.TypeBytes:
		return "LONGBLOB", nil
	case model.TypeJSON:
		return "JSON", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnmappedType, f.Type)
}

// sqliteType maps everything onto SQLite's storage classes. Lengths and
// precision are dropped: SQLite does not enforce them.
func sqliteType(f *model.Field) (string, error) {
	switch f.Type {
	case model.TypeString, model.TypeDateTime, model.TypeDateOnly,
		model.TypeTimeOnly, model.TypeGuid, model.TypeJSON:
		return "TEXT", nil
	case model.TypeInt, model.TypeLong, model.TypeBool:
		return "INTEGER", nil
	case model.TypeDecimal, model.TypeDouble, model.TypeFloat:
		return "REAL", nil
	case model.TypeBytes:
		return "BLOB", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnmappedType, f.Type)
}
