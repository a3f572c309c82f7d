package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	m := &DataModel{
		ID:   "m1",
		Name: "Shop",
		Relations: []Relation{
			{ID: "r1", SourceEntityID: "a", TargetEntityID: "b", Cardinality: OneToMany},
		},
	}
	m.Normalize()

	if m.TargetDialect != SQLServer {
		t.Errorf("expected default dialect sqlserver, got %s", m.TargetDialect)
	}
	if m.Entities == nil || m.Indexes == nil {
		t.Error("expected nil collections to be normalized to empty slices")
	}
	if m.Relations[0].OnDelete != NoAction {
		t.Errorf("expected default onDelete no-action, got %s", m.Relations[0].OnDelete)
	}
	if m.Relations[0].OnUpdate != NoAction {
		t.Errorf("expected default onUpdate no-action, got %s", m.Relations[0].OnUpdate)
	}
}

func TestJSONRoundTripPreservesCosmeticState(t *testing.T) {
	in := `{
		"id": "m1",
		"name": "Shop",
		"targetDialect": "postgres",
		"entities": [
			{
				"id": "e1",
				"name": "User",
				"isAbstract": true,
				"color": "#ff8800",
				"x": 120.5,
				"y": 44,
				"fields": [
					{"id": "f1", "name": "Id", "type": "Guid", "isPrimaryKey": true, "isRequired": true}
				]
			}
		]
	}`

	m, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, want := range []string{`"isAbstract":true`, `"color":"#ff8800"`, `"x":120.5`, `"y":44`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("round-tripped JSON missing %s\ngot: %s", want, out)
		}
	}
}

func TestValidFieldTypeCoversEnum(t *testing.T) {
	if len(FieldTypes()) != 13 {
		t.Fatalf("expected 13 field types, got %d", len(FieldTypes()))
	}
	for _, ft := range FieldTypes() {
		if !ValidFieldType(ft) {
			t.Errorf("ValidFieldType(%q) = false", ft)
		}
	}
	if ValidFieldType("varchar") {
		t.Error("ValidFieldType should reject types outside the enum")
	}
}

func TestValidDialect(t *testing.T) {
	for _, d := range Dialects() {
		if !ValidDialect(d) {
			t.Errorf("ValidDialect(%q) = false", d)
		}
	}
	if ValidDialect("oracle") {
		t.Error("ValidDialect should reject unsupported dialects")
	}
}
