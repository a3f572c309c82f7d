// Package model defines the database model document consumed by every
// generator, together with helpers for loading, querying, validating and
// diffing models. Generators treat a DataModel as an immutable snapshot;
// nothing in this package mutates a model after Normalize.
package model

// Dialect selects one of the four supported SQL targets.
type Dialect string

const (
	SQLServer Dialect = "sqlserver"
	Postgres  Dialect = "postgres"
	MySQL     Dialect = "mysql"
	SQLite    Dialect = "sqlite"
)

// Dialects lists every supported dialect in canonical order.
func Dialects() []Dialect {
	return []Dialect{SQLServer, Postgres, MySQL, SQLite}
}

// FieldType is the closed set of abstract field types. The five type
// maps in pkg/typemap are total over this set.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInt      FieldType = "int"
	TypeLong     FieldType = "long"
	TypeDecimal  FieldType = "decimal"
	TypeDouble   FieldType = "double"
	TypeFloat    FieldType = "float"
	TypeBool     FieldType = "bool"
	TypeDateTime FieldType = "DateTime"
	TypeDateOnly FieldType = "DateOnly"
	TypeTimeOnly FieldType = "TimeOnly"
	TypeGuid     FieldType = "Guid"
	TypeBytes    FieldType = "byte[]"
	TypeJSON     FieldType = "json"
)

// FieldTypes lists every field type in canonical order.
func FieldTypes() []FieldType {
	return []FieldType{
		TypeString, TypeInt, TypeLong, TypeDecimal, TypeDouble, TypeFloat,
		TypeBool, TypeDateTime, TypeDateOnly, TypeTimeOnly, TypeGuid,
		TypeBytes, TypeJSON,
	}
}

// Cardinality classifies a relation.
type Cardinality string

const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToMany Cardinality = "many-to-many"
)

// ReferentialAction is the configured behavior for ON DELETE / ON UPDATE.
type ReferentialAction string

const (
	Cascade  ReferentialAction = "cascade"
	SetNull  ReferentialAction = "set-null"
	NoAction ReferentialAction = "no-action"
	Restrict ReferentialAction = "restrict"
)

// DataModel is the root aggregate: one document per model file. Entity
// and field arrays preserve insertion order; generators iterate them in
// array order so output ordering is deterministic.
type DataModel struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Version       string     `json:"version,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	UpdatedAt     string     `json:"updatedAt,omitempty"`
	TargetDialect Dialect    `json:"targetDialect,omitempty"`
	Entities      []Entity   `json:"entities"`
	Relations     []Relation `json:"relations,omitempty"`
	Indexes       []Index    `json:"indexes,omitempty"`
}

// Entity describes one table/class. Table, Schema, Color, X and Y are
// optional; Color/X/Y are diagram state and never influence generation.
// IsAbstract is carried through faithfully but not consumed by any
// generator.
type Entity struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Table      string  `json:"tableName,omitempty"`
	Schema     string  `json:"schema,omitempty"`
	IsAbstract bool    `json:"isAbstract,omitempty"`
	Color      string  `json:"color,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Fields     []Field `json:"fields"`
}

// Field is a typed, constrained attribute of an entity. Order is an
// advisory display hint; emission always follows array position.
type Field struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Type            FieldType `json:"type"`
	IsRequired      bool      `json:"isRequired,omitempty"`
	IsUnique        bool      `json:"isUnique,omitempty"`
	IsPrimaryKey    bool      `json:"isPrimaryKey,omitempty"`
	IsAutoGenerated bool      `json:"isAutoGenerated,omitempty"`
	MaxLength       *int      `json:"maxLength,omitempty"`
	MinLength       *int      `json:"minLength,omitempty"`
	Precision       *int      `json:"precision,omitempty"`
	Scale           *int      `json:"scale,omitempty"`
	DefaultValue    *string   `json:"defaultValue,omitempty"`
	Regex           string    `json:"regex,omitempty"`
	Order           int       `json:"order,omitempty"`
}

// Relation is a directed association from a source entity to a target
// entity. For one-to-one and one-to-many the source is the FK-holding
// side. SourceFieldID, TargetFieldID and FKFieldName are join-column
// hints carried for round-tripping; generators derive FK names by
// convention instead.
type Relation struct {
	ID             string            `json:"id"`
	Name           string            `json:"name,omitempty"`
	SourceEntityID string            `json:"sourceEntityId"`
	TargetEntityID string            `json:"targetEntityId"`
	Cardinality    Cardinality       `json:"cardinality"`
	SourceFieldID  string            `json:"sourceFieldId,omitempty"`
	TargetFieldID  string            `json:"targetFieldId,omitempty"`
	FKFieldName    string            `json:"foreignKeyFieldName,omitempty"`
	OnDelete       ReferentialAction `json:"onDelete,omitempty"`
	OnUpdate       ReferentialAction `json:"onUpdate,omitempty"`
}

// Index is a (possibly composite) index over one entity's fields.
type Index struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	EntityID    string   `json:"entityId"`
	FieldIDs    []string `json:"fieldIds"`
	IsUnique    bool     `json:"isUnique,omitempty"`
	IsClustered bool     `json:"isClustered,omitempty"`
}

// Normalize fills defaults so generators can rely on them: the target
// dialect falls back to SQL Server and referential actions default to
// no-action. Nil slices become empty so range loops and JSON output are
// stable. Returns the model for chaining.
func (m *DataModel) Normalize() *DataModel {
	if m.TargetDialect == "" {
		m.TargetDialect = SQLServer
	}
	if m.Entities == nil {
		m.Entities = []Entity{}
	}
	if m.Relations == nil {
		m.Relations = []Relation{}
	}
	if m.Indexes == nil {
		m.Indexes = []Index{}
	}
	for i := range m.Relations {
		if m.Relations[i].OnDelete == "" {
			m.Relations[i].OnDelete = NoAction
		}
		if m.Relations[i].OnUpdate == "" {
			m.Relations[i].OnUpdate = NoAction
		}
	}
	for i := range m.Entities {
		if m.Entities[i].Fields == nil {
			m.Entities[i].Fields = []Field{}
		}
	}
	return m
}

// ValidDialect reports whether d is one of the four supported dialects.
func ValidDialect(d Dialect) bool {
	switch d {
	case SQLServer, Postgres, MySQL, SQLite:
		return true
	}
	return false
}

// ValidFieldType reports whether t is a member of the closed type enum.
func ValidFieldType(t FieldType) bool {
	switch t {
	case TypeString, TypeInt, TypeLong, TypeDecimal, TypeDouble, TypeFloat,
		TypeBool, TypeDateTime, TypeDateOnly, TypeTimeOnly, TypeGuid,
		TypeBytes, TypeJSON:
		return true
	}
	return false
}
