package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCleanModel(t *testing.T) {
	m := testModel()
	issues := Validate(m)

	// Tag has no primary key, which is a note, never an error.
	assert.False(t, HasErrors(issues))

	foundNote := false
	for _, i := range issues {
		if i.Severity == SeverityNote && i.Element == "entity Tag" {
			foundNote = true
		}
	}
	assert.True(t, foundNote, "expected a synthesized-key note for Tag")
}

func TestValidateDanglingRelation(t *testing.T) {
	m := testModel()
	m.Relations = append(m.Relations, Relation{
		ID: "r-dangling", SourceEntityID: "order", TargetEntityID: "ghost", Cardinality: OneToMany,
	})

	issues := Validate(m)
	assert.True(t, HasErrors(issues))

	found := false
	for _, i := range issues {
		if i.Severity == SeverityError && i.Element == "relation r-dangling" {
			found = true
		}
	}
	assert.True(t, found, "expected an error for the dangling relation target")
}

func TestValidateConstraintMismatches(t *testing.T) {
	ten := 10
	two := 2
	m := (&DataModel{
		ID:   "m1",
		Name: "Shop",
		Entities: []Entity{
			{
				ID:   "e1",
				Name: "Product",
				Fields: []Field{
					{ID: "f1", Name: "Id", Type: TypeGuid, IsPrimaryKey: true},
					{ID: "f2", Name: "Title", Type: TypeString, Precision: &ten, Scale: &two},
					{ID: "f3", Name: "Count", Type: TypeInt, MaxLength: &ten},
				},
			},
		},
	}).Normalize()

	issues := Validate(m)
	assert.False(t, HasErrors(issues))

	warnings := 0
	for _, i := range issues {
		if i.Severity == SeverityWarning {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings, "precision on string and maxLength on int should each warn")
}

func TestValidateDuplicateNames(t *testing.T) {
	m := (&DataModel{
		ID:   "m1",
		Name: "Shop",
		Entities: []Entity{
			{ID: "e1", Name: "User", Fields: []Field{{ID: "f1", Name: "Id", Type: TypeGuid, IsPrimaryKey: true}}},
			{ID: "e2", Name: "User", Fields: []Field{{ID: "f2", Name: "Id", Type: TypeGuid, IsPrimaryKey: true}}},
		},
	}).Normalize()

	issues := Validate(m)
	assert.True(t, HasErrors(issues))
}

func TestValidateSuspiciousDefaults(t *testing.T) {
	newguid := "newguid"
	junk := "banana"
	m := (&DataModel{
		ID:   "m1",
		Name: "Shop",
		Entities: []Entity{
			{
				ID:   "e1",
				Name: "Thing",
				Fields: []Field{
					{ID: "f1", Name: "Id", Type: TypeGuid, IsPrimaryKey: true, DefaultValue: &newguid},
					{ID: "f2", Name: "Count", Type: TypeInt, DefaultValue: &junk},
				},
			},
		},
	}).Normalize()

	issues := Validate(m)
	assert.False(t, HasErrors(issues))

	found := false
	for _, i := range issues {
		if i.Severity == SeverityWarning && i.Element == "entity Thing.Count" {
			found = true
		}
	}
	assert.True(t, found, "non-numeric default on an int field should warn")
}

func TestValidateUnknownFieldType(t *testing.T) {
	m := (&DataModel{
		ID:   "m1",
		Name: "Shop",
		Entities: []Entity{
			{ID: "e1", Name: "Thing", Fields: []Field{{ID: "f1", Name: "X", Type: "varchar"}}},
		},
	}).Normalize()

	assert.True(t, HasErrors(Validate(m)))
}
