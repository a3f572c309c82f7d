package model

import "fmt"

// ModelDiff summarizes what changed between two revisions of a model.
// Entities, relations and indexes are matched by id so renames are
// reported as renames rather than remove+add pairs.
type ModelDiff struct {
	EntitiesAdded    []string     `json:"entitiesAdded,omitempty"`
	EntitiesRemoved  []string     `json:"entitiesRemoved,omitempty"`
	EntitiesModified []EntityDiff `json:"entitiesModified,omitempty"`
	RelationsAdded   []string     `json:"relationsAdded,omitempty"`
	RelationsRemoved []string     `json:"relationsRemoved,omitempty"`
	RelationsChanged []string     `json:"relationsChanged,omitempty"`
	IndexesAdded     []string     `json:"indexesAdded,omitempty"`
	IndexesRemoved   []string     `json:"indexesRemoved,omitempty"`
	IndexesChanged   []string     `json:"indexesChanged,omitempty"`
	DialectChanged   string       `json:"dialectChanged,omitempty"`
}

// EntityDiff describes changes within one entity.
type EntityDiff struct {
	Name           string      `json:"name"`
	RenamedFrom    string      `json:"renamedFrom,omitempty"`
	TableChanged   string      `json:"tableChanged,omitempty"`
	FieldsAdded    []string    `json:"fieldsAdded,omitempty"`
	FieldsRemoved  []string    `json:"fieldsRemoved,omitempty"`
	FieldsModified []FieldDiff `json:"fieldsModified,omitempty"`
}

// FieldDiff describes changes to a single field.
type FieldDiff struct {
	Name               string `json:"name"`
	RenamedFrom        string `json:"renamedFrom,omitempty"`
	TypeChanged        string `json:"typeChanged,omitempty"`
	RequiredChanged    bool   `json:"requiredChanged,omitempty"`
	UniqueChanged      bool   `json:"uniqueChanged,omitempty"`
	KeyChanged         bool   `json:"keyChanged,omitempty"`
	ConstraintsChanged bool   `json:"constraintsChanged,omitempty"`
}

// HasChanges reports whether the diff contains anything at all.
func (d *ModelDiff) HasChanges() bool {
	return len(d.EntitiesAdded) > 0 ||
		len(d.EntitiesRemoved) > 0 ||
		len(d.EntitiesModified) > 0 ||
		len(d.RelationsAdded) > 0 ||
		len(d.RelationsRemoved) > 0 ||
		len(d.RelationsChanged) > 0 ||
		len(d.IndexesAdded) > 0 ||
		len(d.IndexesRemoved) > 0 ||
		len(d.IndexesChanged) > 0 ||
		d.DialectChanged != ""
}

// HasChanges reports whether the entity diff contains anything.
func (d *EntityDiff) HasChanges() bool {
	return d.RenamedFrom != "" ||
		d.TableChanged != "" ||
		len(d.FieldsAdded) > 0 ||
		len(d.FieldsRemoved) > 0 ||
		len(d.FieldsModified) > 0
}

// Compare diffs two model revisions, old against new.
func Compare(oldModel, newModel *DataModel) *ModelDiff {
	diff := &ModelDiff{}

	if oldModel.TargetDialect != newModel.TargetDialect {
		diff.DialectChanged = fmt.Sprintf("%s -> %s", oldModel.TargetDialect, newModel.TargetDialect)
	}

	oldEntities := make(map[string]*Entity)
	for i := range oldModel.Entities {
		oldEntities[oldModel.Entities[i].ID] = &oldModel.Entities[i]
	}
	newEntities := make(map[string]*Entity)
	for i := range newModel.Entities {
		newEntities[newModel.Entities[i].ID] = &newModel.Entities[i]
	}

	for i := range newModel.Entities {
		e := &newModel.Entities[i]
		if _, exists := oldEntities[e.ID]; !exists {
			diff.EntitiesAdded = append(diff.EntitiesAdded, e.Name)
		}
	}
	for i := range oldModel.Entities {
		e := &oldModel.Entities[i]
		if _, exists := newEntities[e.ID]; !exists {
			diff.EntitiesRemoved = append(diff.EntitiesRemoved, e.Name)
		}
	}
	for i := range newModel.Entities {
		newEnt := &newModel.Entities[i]
		oldEnt, exists := oldEntities[newEnt.ID]
		if !exists {
			continue
		}
		entityDiff := compareEntity(oldEnt, newEnt)
		if entityDiff.HasChanges() {
			diff.EntitiesModified = append(diff.EntitiesModified, entityDiff)
		}
	}

	compareRelations(oldModel, newModel, diff)
	compareIndexes(oldModel, newModel, diff)

	return diff
}

func compareEntity(oldEnt, newEnt *Entity) EntityDiff {
	diff := EntityDiff{Name: newEnt.Name}
	if oldEnt.Name != newEnt.Name {
		diff.RenamedFrom = oldEnt.Name
	}
	if oldEnt.TableName() != newEnt.TableName() {
		diff.TableChanged = fmt.Sprintf("%s -> %s", oldEnt.TableName(), newEnt.TableName())
	}

	oldFields := make(map[string]*Field)
	for i := range oldEnt.Fields {
		oldFields[oldEnt.Fields[i].ID] = &oldEnt.Fields[i]
	}
	newFields := make(map[string]*Field)
	for i := range newEnt.Fields {
		newFields[newEnt.Fields[i].ID] = &newEnt.Fields[i]
	}

	for i := range newEnt.Fields {
		f := &newEnt.Fields[i]
		if _, exists := oldFields[f.ID]; !exists {
			diff.FieldsAdded = append(diff.FieldsAdded, f.Name)
		}
	}
	for i := range oldEnt.Fields {
		f := &oldEnt.Fields[i]
		if _, exists := newFields[f.ID]; !exists {
			diff.FieldsRemoved = append(diff.FieldsRemoved, f.Name)
		}
	}
	for i := range newEnt.Fields {
		newField := &newEnt.Fields[i]
		oldField, exists := oldFields[newField.ID]
		if !exists {
			continue
		}
		fieldDiff := compareField(oldField, newField)
		if fieldDiff != nil {
			diff.FieldsModified = append(diff.FieldsModified, *fieldDiff)
		}
	}
	return diff
}

func compareField(oldField, newField *Field) *FieldDiff {
	diff := FieldDiff{Name: newField.Name}
	if oldField.Name != newField.Name {
		diff.RenamedFrom = oldField.Name
	}
	if oldField.Type != newField.Type {
		diff.TypeChanged = fmt.Sprintf("%s -> %s", oldField.Type, newField.Type)
	}
	diff.RequiredChanged = oldField.IsRequired != newField.IsRequired
	diff.UniqueChanged = oldField.IsUnique != newField.IsUnique
	diff.KeyChanged = oldField.IsPrimaryKey != newField.IsPrimaryKey
	diff.ConstraintsChanged = !sameIntPtr(oldField.MaxLength, newField.MaxLength) ||
		!sameIntPtr(oldField.MinLength, newField.MinLength) ||
		!sameIntPtr(oldField.Precision, newField.Precision) ||
		!sameIntPtr(oldField.Scale, newField.Scale) ||
		!sameStringPtr(oldField.DefaultValue, newField.DefaultValue) ||
		oldField.Regex != newField.Regex ||
		oldField.IsAutoGenerated != newField.IsAutoGenerated

	if diff.RenamedFrom == "" && diff.TypeChanged == "" && !diff.RequiredChanged &&
		!diff.UniqueChanged && !diff.KeyChanged && !diff.ConstraintsChanged {
		return nil
	}
	return &diff
}

func compareRelations(oldModel, newModel *DataModel, diff *ModelDiff) {
	oldRelations := make(map[string]Relation)
	for _, r := range oldModel.Relations {
		oldRelations[r.ID] = r
	}
	newRelations := make(map[string]Relation)
	for _, r := range newModel.Relations {
		newRelations[r.ID] = r
	}

	for _, r := range newModel.Relations {
		if _, exists := oldRelations[r.ID]; !exists {
			diff.RelationsAdded = append(diff.RelationsAdded, describeRelation(newModel, r))
		}
	}
	for _, r := range oldModel.Relations {
		if _, exists := newRelations[r.ID]; !exists {
			diff.RelationsRemoved = append(diff.RelationsRemoved, describeRelation(oldModel, r))
		}
	}
	for _, newRel := range newModel.Relations {
		oldRel, exists := oldRelations[newRel.ID]
		if !exists {
			continue
		}
		if oldRel.SourceEntityID != newRel.SourceEntityID ||
			oldRel.TargetEntityID != newRel.TargetEntityID ||
			oldRel.Cardinality != newRel.Cardinality ||
			oldRel.OnDelete != newRel.OnDelete ||
			oldRel.OnUpdate != newRel.OnUpdate {
			diff.RelationsChanged = append(diff.RelationsChanged, describeRelation(newModel, newRel))
		}
	}
}

func compareIndexes(oldModel, newModel *DataModel, diff *ModelDiff) {
	oldIndexes := make(map[string]Index)
	for _, idx := range oldModel.Indexes {
		oldIndexes[idx.ID] = idx
	}
	newIndexes := make(map[string]Index)
	for _, idx := range newModel.Indexes {
		newIndexes[idx.ID] = idx
	}

	for _, idx := range newModel.Indexes {
		if _, exists := oldIndexes[idx.ID]; !exists {
			diff.IndexesAdded = append(diff.IndexesAdded, indexLabel(idx))
		}
	}
	for _, idx := range oldModel.Indexes {
		if _, exists := newIndexes[idx.ID]; !exists {
			diff.IndexesRemoved = append(diff.IndexesRemoved, indexLabel(idx))
		}
	}
	for _, newIdx := range newModel.Indexes {
		oldIdx, exists := oldIndexes[newIdx.ID]
		if !exists {
			continue
		}
		if oldIdx.IsUnique != newIdx.IsUnique ||
			oldIdx.IsClustered != newIdx.IsClustered ||
			!sameStringSlice(oldIdx.FieldIDs, newIdx.FieldIDs) {
			diff.IndexesChanged = append(diff.IndexesChanged, indexLabel(newIdx))
		}
	}
}

// describeRelation renders "Source -> Target (cardinality)" using entity
// names when the endpoints resolve, falling back to raw ids.
func describeRelation(m *DataModel, r Relation) string {
	source := r.SourceEntityID
	if e := m.EntityByID(r.SourceEntityID); e != nil {
		source = e.Name
	}
	target := r.TargetEntityID
	if e := m.EntityByID(r.TargetEntityID); e != nil {
		target = e.Name
	}
	return fmt.Sprintf("%s -> %s (%s)", source, target, r.Cardinality)
}

func indexLabel(idx Index) string {
	if idx.Name != "" {
		return idx.Name
	}
	return idx.ID
}

func sameIntPtr(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func sameStringPtr(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func sameStringSlice(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
