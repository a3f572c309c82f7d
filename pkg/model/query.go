package model

import "github.com/marshallshelly/quarry/pkg/naming"

// PrimaryKeyField returns the first field flagged as primary key in
// array order, or nil when the entity declares none.
func (e *Entity) PrimaryKeyField() *Field {
	for i := range e.Fields {
		if e.Fields[i].IsPrimaryKey {
			return &e.Fields[i]
		}
	}
	return nil
}

// FallbackKey is the synthetic primary key used wherever an entity
// declares none: a required, auto-generated Guid named Id.
func FallbackKey() Field {
	return Field{
		Name:            "Id",
		Type:            TypeGuid,
		IsRequired:      true,
		IsPrimaryKey:    true,
		IsAutoGenerated: true,
	}
}

// EffectiveKey returns the entity's primary key field, falling back to
// the synthetic Guid Id when none is declared.
func (e *Entity) EffectiveKey() Field {
	if pk := e.PrimaryKeyField(); pk != nil {
		return *pk
	}
	return FallbackKey()
}

// FieldByID returns the entity field with the given id, or nil.
func (e *Entity) FieldByID(id string) *Field {
	for i := range e.Fields {
		if e.Fields[i].ID == id {
			return &e.Fields[i]
		}
	}
	return nil
}

// FieldByName returns the entity field with the given name, or nil.
func (e *Entity) FieldByName(name string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}

// TableName resolves the physical table name: the custom name when set,
// otherwise the pluralized PascalCase entity name.
func (e *Entity) TableName() string {
	if e.Table != "" {
		return e.Table
	}
	return naming.Plural(naming.PascalCase(e.Name))
}

// ClassName is the PascalCase type name emitted for the entity.
func (e *Entity) ClassName() string {
	return naming.SanitizeIdentifier(naming.PascalCase(e.Name))
}

// EntityByID returns the entity with the given id, or nil when absent.
// Generators use the nil result to skip dangling relation endpoints.
func (m *DataModel) EntityByID(id string) *Entity {
	for i := range m.Entities {
		if m.Entities[i].ID == id {
			return &m.Entities[i]
		}
	}
	return nil
}

// EntityByName returns the entity with the given name, or nil.
func (m *DataModel) EntityByName(name string) *Entity {
	for i := range m.Entities {
		if m.Entities[i].Name == name {
			return &m.Entities[i]
		}
	}
	return nil
}

// RelationsOf partitions the model's relations for one entity: outgoing
// (the entity is the source) and incoming (the entity is the target). A
// self-relation appears in both partitions.
func (m *DataModel) RelationsOf(entityID string) (outgoing, incoming []Relation) {
	for _, r := range m.Relations {
		if r.SourceEntityID == entityID {
			outgoing = append(outgoing, r)
		}
		if r.TargetEntityID == entityID {
			incoming = append(incoming, r)
		}
	}
	return outgoing, incoming
}

// IndexesOf returns the model-level indexes declared on the entity.
func (m *DataModel) IndexesOf(entityID string) []Index {
	var out []Index
	for _, idx := range m.Indexes {
		if idx.EntityID == entityID {
			out = append(out, idx)
		}
	}
	return out
}
