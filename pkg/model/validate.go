package model

import (
	"fmt"
	"strings"
)

// Severity ranks a validation issue. Generation never fails on any of
// these; they exist so the editing side can surface problems early.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Issue is one validation finding, tied to the model element it was
// found on.
type Issue struct {
	Severity Severity `json:"severity"`
	Element  string   `json:"element"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Element, i.Message)
}

// Validate lints a model and returns every finding. Errors mark input
// the generators will silently skip or fall back on (dangling relations,
// unknown types); warnings mark constraint combinations that emit
// questionable output; notes mark fallbacks that are usually intended.
func Validate(m *DataModel) []Issue {
	var issues []Issue

	seenNames := make(map[string]bool)
	entityIDs := make(map[string]bool)
	for i := range m.Entities {
		e := &m.Entities[i]
		entityIDs[e.ID] = true

		if e.Name == "" {
			issues = append(issues, Issue{SeverityError, "entity " + e.ID, "entity has no name"})
		}
		if seenNames[e.Name] {
			issues = append(issues, Issue{SeverityError, "entity " + e.Name, "duplicate entity name"})
		}
		seenNames[e.Name] = true

		issues = append(issues, validateFields(e)...)
	}

	for _, r := range m.Relations {
		element := "relation " + relationLabel(r)
		if !entityIDs[r.SourceEntityID] {
			issues = append(issues, Issue{SeverityError, element, "source entity not found; relation will be skipped"})
		}
		if !entityIDs[r.TargetEntityID] {
			issues = append(issues, Issue{SeverityError, element, "target entity not found; relation will be skipped"})
		}
		switch r.Cardinality {
		case OneToOne, OneToMany, ManyToMany:
		default:
			issues = append(issues, Issue{SeverityError, element, fmt.Sprintf("unknown cardinality %q", r.Cardinality)})
		}
	}

	for _, idx := range m.Indexes {
		element := "index " + idx.Name
		if idx.Name == "" {
			element = "index " + idx.ID
		}
		entity := m.EntityByID(idx.EntityID)
		if entity == nil {
			issues = append(issues, Issue{SeverityError, element, "entity not found; index will be skipped"})
			continue
		}
		if len(idx.FieldIDs) == 0 {
			issues = append(issues, Issue{SeverityWarning, element, "index has no fields"})
		}
		for _, fid := range idx.FieldIDs {
			if entity.FieldByID(fid) == nil {
				issues = append(issues, Issue{SeverityWarning, element,
					fmt.Sprintf("field %s not found on entity %s", fid, entity.Name)})
			}
		}
	}

	return issues
}

func validateFields(e *Entity) []Issue {
	var issues []Issue
	element := "entity " + e.Name

	pkCount := 0
	fieldNames := make(map[string]bool)
	for _, f := range e.Fields {
		felem := element + "." + f.Name

		if f.Name == "" {
			issues = append(issues, Issue{SeverityError, element, "field has no name"})
		}
		if fieldNames[f.Name] {
			issues = append(issues, Issue{SeverityError, felem, "duplicate field name"})
		}
		fieldNames[f.Name] = true

		if !ValidFieldType(f.Type) {
			issues = append(issues, Issue{SeverityError, felem, fmt.Sprintf("unknown field type %q", f.Type)})
		}
		if f.IsPrimaryKey {
			pkCount++
		}
		if (f.Precision != nil || f.Scale != nil) && f.Type != TypeDecimal {
			issues = append(issues, Issue{SeverityWarning, felem, "precision/scale is only honored on decimal fields"})
		}
		if (f.MaxLength != nil || f.MinLength != nil) && f.Type != TypeString {
			issues = append(issues, Issue{SeverityWarning, felem, "length bounds are only honored on string fields"})
		}
		if f.MaxLength != nil && f.MinLength != nil && *f.MinLength > *f.MaxLength {
			issues = append(issues, Issue{SeverityWarning, felem, "minLength exceeds maxLength"})
		}
		if f.DefaultValue != nil {
			issues = append(issues, validateDefault(felem, f)...)
		}
	}

	if pkCount == 0 {
		issues = append(issues, Issue{SeverityNote, element, "no primary key; a Guid Id key will be synthesized"})
	}
	if pkCount > 1 {
		issues = append(issues, Issue{SeverityWarning, element, "multiple primary-key fields; only the first is used"})
	}
	return issues
}

// validateDefault flags default tokens the generators will pass through
// verbatim even though they are unlikely to be what the author meant.
func validateDefault(element string, f *Field) []Issue {
	token := strings.ToLower(strings.TrimSpace(*f.DefaultValue))

	switch f.Type {
	case TypeGuid:
		if token != "newguid" && token != "newid" && !looksLikeGuid(token) {
			return []Issue{{SeverityWarning, element,
				fmt.Sprintf("default %q is not a recognized Guid token (newguid/newid) or literal", *f.DefaultValue)}}
		}
	case TypeDateTime, TypeDateOnly, TypeTimeOnly:
		switch token {
		case "now", "getdate", "utcnow", "getutcdate":
		default:
			return []Issue{{SeverityNote, element,
				fmt.Sprintf("default %q is not a recognized time token; no default will be emitted for the class property", *f.DefaultValue)}}
		}
	case TypeBool:
		if token != "true" && token != "false" {
			return []Issue{{SeverityWarning, element,
				fmt.Sprintf("default %q is not a boolean literal", *f.DefaultValue)}}
		}
	case TypeInt, TypeLong, TypeDecimal, TypeDouble, TypeFloat:
		if !isNumericToken(token) {
			return []Issue{{SeverityWarning, element,
				fmt.Sprintf("default %q is not numeric and will be emitted verbatim", *f.DefaultValue)}}
		}
	}
	return nil
}

func looksLikeGuid(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
			if !isHex {
				return false
			}
		}
	}
	return true
}

func isNumericToken(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if i == 0 && (c == '-' || c == '+') {
			continue
		}
		if c == '.' {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func relationLabel(r Relation) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// HasErrors reports whether any issue in the list is error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
