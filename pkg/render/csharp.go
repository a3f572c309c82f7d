// Package render implements the field-level renderers shared by the
// artifact generators: C# annotations, property types and initializers,
// and SQL column definitions with dialect-specific quoting,
// auto-increment, and default handling.
package render

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

// Annotations returns the attribute lines for a field on the entity
// class, in emission order. Lines carry no indentation.
func Annotations(f *model.Field) []string {
	var lines []string
	if f.IsPrimaryKey {
		lines = append(lines, "[Key]")
	}
	return append(lines, ValidationAnnotations(f, true)...)
}

// ValidationAnnotations returns the write-time validation attributes for
// a field: the required marker (reference types only, value types are
// non-null by construction), length bounds, pattern, and the decimal
// column type. includeRequired is false for update shapes, where every
// property is optional.
func ValidationAnnotations(f *model.Field, includeRequired bool) []string {
	var lines []string
	if includeRequired && f.IsRequired && typemap.IsReference(f.Type) {
		lines = append(lines, "[Required]")
	}
	switch {
	case f.MaxLength != nil && f.MinLength != nil:
		lines = append(lines, fmt.Sprintf("[StringLength(%d, MinimumLength = %d)]", *f.MaxLength, *f.MinLength))
	case f.MaxLength != nil:
		lines = append(lines, fmt.Sprintf("[MaxLength(%d)]", *f.MaxLength))
	case f.MinLength != nil:
		lines = append(lines, fmt.Sprintf("[MinLength(%d)]", *f.MinLength))
	}
	if f.Regex != "" {
		lines = append(lines, fmt.Sprintf("[RegularExpression(@\"%s\")]", f.Regex))
	}
	if f.Type == model.TypeDecimal {
		p, s, _ := typemap.DecimalArgs(f)
		lines = append(lines, fmt.Sprintf("[Column(TypeName = \"decimal(%d, %d)\")]", p, s))
	}
	return lines
}

// PropertyType returns the C# type for a field, wrapped as nullable
// unless the field is required or the primary key.
func PropertyType(f *model.Field) (string, error) {
	base, err := typemap.CSharp(f.Type)
	if err != nil {
		return "", err
	}
	if f.IsRequired || f.IsPrimaryKey {
		return base, nil
	}
	return base + "?", nil
}

// PropertyInitializer returns the C# default-value expression for a
// field, if one applies. Tokens are recognized per type: "newguid" or
// "newid" for Guid fields, "now"/"getdate"/"utcnow"/"getutcdate" for
// DateTime fields (anything else emits no default), quoted literals for
// strings, lowered literals for bools, and the raw token verbatim for
// every other type. Required strings with no declared default get an
// empty-string initializer.
func PropertyInitializer(f *model.Field) (string, bool) {
	if f.DefaultValue != nil {
		token := *f.DefaultValue
		switch f.Type {
		case model.TypeString:
			return "\"" + token + "\"", true
		case model.TypeBool:
			return strings.ToLower(token), true
		case model.TypeGuid:
			switch strings.ToLower(token) {
			case "newguid", "newid":
				return "Guid.NewGuid()", true
			}
			return "Guid.Parse(\"" + token + "\")", true
		case model.TypeDateTime:
			switch strings.ToLower(token) {
			case "now", "getdate":
				return "DateTime.Now", true
			case "utcnow", "getutcdate":
				return "DateTime.UtcNow", true
			}
			return "", false
		default:
			return token, true
		}
	}
	if f.Type == model.TypeString && (f.IsRequired || f.IsPrimaryKey) {
		return "string.Empty", true
	}
	return "", false
}

// DeleteBehavior maps a referential action onto the EF Core
// DeleteBehavior member name used in mapping configuration.
func DeleteBehavior(a model.ReferentialAction) string {
	switch a {
	case model.Cascade:
		return "Cascade"
	case model.SetNull:
		return "SetNull"
	case model.Restrict:
		return "Restrict"
	default:
		return "NoAction"
	}
}
