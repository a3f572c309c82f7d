package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalModels(t *testing.T) {
	diff := Compare(testModel(), testModel())
	assert.False(t, diff.HasChanges())
}

func TestCompareEntityAddedAndRemoved(t *testing.T) {
	oldModel := testModel()
	newModel := testModel()

	// Drop Tag, introduce Invoice.
	newModel.Entities = newModel.Entities[:2]
	newModel.Entities = append(newModel.Entities, Entity{
		ID:     "invoice",
		Name:   "Invoice",
		Fields: []Field{{ID: "invoice-id", Name: "Id", Type: TypeGuid, IsPrimaryKey: true}},
	})

	diff := Compare(oldModel, newModel)
	require.True(t, diff.HasChanges())
	assert.Equal(t, []string{"Invoice"}, diff.EntitiesAdded)
	assert.Equal(t, []string{"Tag"}, diff.EntitiesRemoved)
	assert.Empty(t, diff.EntitiesModified)
}

func TestCompareEntityRenameKeepsIdentity(t *testing.T) {
	oldModel := testModel()
	newModel := testModel()
	newModel.Entities[0].Name = "Account"

	diff := Compare(oldModel, newModel)
	require.Len(t, diff.EntitiesModified, 1)
	ed := diff.EntitiesModified[0]
	assert.Equal(t, "Account", ed.Name)
	assert.Equal(t, "User", ed.RenamedFrom)
	assert.Equal(t, "Users -> Accounts", ed.TableChanged)
	assert.Empty(t, diff.EntitiesAdded)
	assert.Empty(t, diff.EntitiesRemoved)
}

func TestCompareFieldChanges(t *testing.T) {
	oldModel := testModel()
	newModel := testModel()

	// Email becomes optional and gains a length cap; a new field appears.
	ten := 10
	newModel.Entities[0].Fields[1].IsRequired = false
	newModel.Entities[0].Fields[1].MaxLength = &ten
	newModel.Entities[0].Fields = append(newModel.Entities[0].Fields, Field{
		ID: "user-name", Name: "DisplayName", Type: TypeString,
	})

	diff := Compare(oldModel, newModel)
	require.Len(t, diff.EntitiesModified, 1)
	ed := diff.EntitiesModified[0]
	assert.Equal(t, []string{"DisplayName"}, ed.FieldsAdded)
	require.Len(t, ed.FieldsModified, 1)
	fd := ed.FieldsModified[0]
	assert.Equal(t, "Email", fd.Name)
	assert.True(t, fd.RequiredChanged)
	assert.True(t, fd.ConstraintsChanged)
	assert.Empty(t, fd.TypeChanged)
}

func TestCompareFieldTypeChange(t *testing.T) {
	oldModel := testModel()
	newModel := testModel()
	newModel.Entities[1].Fields[0].Type = TypeGuid

	diff := Compare(oldModel, newModel)
	require.Len(t, diff.EntitiesModified, 1)
	require.Len(t, diff.EntitiesModified[0].FieldsModified, 1)
	assert.Equal(t, "long -> Guid", diff.EntitiesModified[0].FieldsModified[0].TypeChanged)
}

func TestCompareRelationChanges(t *testing.T) {
	oldModel := testModel()
	newModel := testModel()

	// r1 gains cascade delete, r2 disappears, r3 is new.
	newModel.Relations[0].OnDelete = Cascade
	newModel.Relations = newModel.Relations[:1]
	newModel.Relations = append(newModel.Relations, Relation{
		ID: "r3", SourceEntityID: "tag", TargetEntityID: "order", Cardinality: ManyToMany,
	})
	newModel = newModel.Normalize()

	diff := Compare(oldModel, newModel)
	assert.Equal(t, []string{"Tag -> Order (many-to-many)"}, diff.RelationsAdded)
	assert.Equal(t, []string{"User -> User (one-to-one)"}, diff.RelationsRemoved)
	assert.Equal(t, []string{"Order -> User (one-to-many)"}, diff.RelationsChanged)
}

func TestCompareIndexChanges(t *testing.T) {
	oldModel := testModel()
	newModel := testModel()
	newModel.Indexes = append(newModel.Indexes, Index{
		ID: "ix1", Name: "IX_Users_Email", EntityID: "user", FieldIDs: []string{"user-email"}, IsUnique: true,
	})

	diff := Compare(oldModel, newModel)
	assert.Equal(t, []string{"IX_Users_Email"}, diff.IndexesAdded)

	// Same index flipping uniqueness reports a change, not add/remove.
	flipped := Compare(newModel, func() *DataModel {
		m := testModel()
		m.Indexes = append(m.Indexes, Index{
			ID: "ix1", Name: "IX_Users_Email", EntityID: "user", FieldIDs: []string{"user-email"},
		})
		return m
	}())
	assert.Empty(t, flipped.IndexesAdded)
	assert.Equal(t, []string{"IX_Users_Email"}, flipped.IndexesChanged)
}

func TestCompareDialectChange(t *testing.T) {
	oldModel := testModel()
	newModel := testModel()
	newModel.TargetDialect = Postgres

	diff := Compare(oldModel, newModel)
	assert.Equal(t, "sqlserver -> postgres", diff.DialectChanged)
	assert.True(t, diff.HasChanges())
}
