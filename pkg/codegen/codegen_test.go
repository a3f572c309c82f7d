package codegen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

func intPtr(n int) *int { return &n }

func userEntity() model.Entity {
	return model.Entity{
		ID:   "e-user",
		Name: "User",
		Fields: []model.Field{
			{ID: "f-user-id", Name: "Id", Type: model.TypeGuid, IsPrimaryKey: true, IsRequired: true, IsAutoGenerated: true},
			{ID: "f-user-email", Name: "Email", Type: model.TypeString, IsRequired: true, IsUnique: true, MaxLength: intPtr(255)},
		},
	}
}

func orderEntity(name string) model.Entity {
	return model.Entity{
		ID:   "e-order",
		Name: name,
		Fields: []model.Field{
			{ID: "f-order-id", Name: "Id", Type: model.TypeGuid, IsPrimaryKey: true, IsRequired: true, IsAutoGenerated: true},
			{ID: "f-order-total", Name: "Total", Type: model.TypeDecimal, Precision: intPtr(10), Scale: intPtr(2)},
		},
	}
}

func userModel() *model.DataModel {
	m := &model.DataModel{ID: "dm-user", Name: "Shop", Entities: []model.Entity{userEntity()}}
	return m.Normalize()
}

func shopModelNamed(orderName string) *model.DataModel {
	m := &model.DataModel{
		ID:       "dm-shop",
		Name:     "Shop",
		Entities: []model.Entity{userEntity(), orderEntity(orderName)},
		Relations: []model.Relation{
			{ID: "r-order-user", SourceEntityID: "e-order", TargetEntityID: "e-user", Cardinality: model.OneToMany, OnDelete: model.Cascade},
		},
		Indexes: []model.Index{
			{ID: "ix-user-email", EntityID: "e-user", FieldIDs: []string{"f-user-email"}, IsUnique: true},
		},
	}
	return m.Normalize()
}

func shopModel() *model.DataModel { return shopModelNamed("Order") }

func enrollmentModel() *model.DataModel {
	m := &model.DataModel{
		ID:   "dm-school",
		Name: "School",
		Entities: []model.Entity{
			{
				ID:   "e-student",
				Name: "Student",
				Fields: []model.Field{
					{ID: "f-student-id", Name: "Id", Type: model.TypeGuid, IsPrimaryKey: true, IsRequired: true, IsAutoGenerated: true},
				},
			},
			{
				ID:   "e-course",
				Name: "Course",
				Fields: []model.Field{
					{ID: "f-course-id", Name: "Id", Type: model.TypeGuid, IsPrimaryKey: true, IsRequired: true, IsAutoGenerated: true},
				},
			},
		},
		Relations: []model.Relation{
			{ID: "r-enroll", SourceEntityID: "e-student", TargetEntityID: "e-course", Cardinality: model.ManyToMany},
		},
	}
	return m.Normalize()
}

func danglingModel(withRelation bool) *model.DataModel {
	m := &model.DataModel{
		ID:       "dm-dangling",
		Name:     "Shop",
		Entities: []model.Entity{userEntity(), orderEntity("Order")},
	}
	if withRelation {
		m.Relations = []model.Relation{
			{ID: "r-ghost", SourceEntityID: "e-order", TargetEntityID: "e-ghost", Cardinality: model.OneToMany, OnDelete: model.Cascade},
		}
	}
	return m.Normalize()
}

func mustGenerate(t *testing.T, kind Kind, m *model.DataModel) string {
	t.Helper()
	out, err := Generate(kind, m, Options{})
	require.NoError(t, err, "generate %s", kind)
	return out
}

func TestGenerateUnknownKind(t *testing.T) {
	_, err := Generate(Kind("pdf"), userModel(), Options{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestGenerateWrapsGeneratorFailure(t *testing.T) {
	m := (&model.DataModel{
		Name: "Bad",
		Entities: []model.Entity{
			{ID: "e-1", Name: "Thing", Fields: []model.Field{
				{ID: "f-1", Name: "Blob", Type: model.FieldType("varchar")},
			}},
		},
	}).Normalize()

	_, err := Generate(KindEntities, m, Options{})
	require.Error(t, err)

	var genErr *GenerateError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindEntities, genErr.Kind)
	assert.True(t, errors.Is(err, typemap.ErrUnmappedType))
}

func TestKindsCanonicalOrder(t *testing.T) {
	assert.Equal(t, AllKinds(), Kinds())
	assert.Len(t, Kinds(), 11)
}

func TestGenerateAllCoversEveryKind(t *testing.T) {
	out, err := GenerateAll(shopModel(), Options{})
	require.NoError(t, err)
	require.Len(t, out, 11)
	for kind, text := range out {
		assert.NotEmpty(t, text, "kind %s", kind)
	}
}

func TestFileNames(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindEntities, "Entities.cs"},
		{KindContext, "DbContext.cs"},
		{KindDTOs, "Dtos.cs"},
		{KindControllers, "Controllers.cs"},
		{KindRepositories, "Repositories.cs"},
		{KindServices, "Services.cs"},
		{KindSQLServer, "schema.sqlserver.sql"},
		{KindSQLPostgres, "schema.postgres.sql"},
		{KindSQLMySQL, "schema.mysql.sql"},
		{KindSQLSQLite, "schema.sqlite.sql"},
		{KindOpenAPI, "openapi.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.FileName())
	}
}

// Repeated generation from the same snapshot must be byte-identical for
// every artifact kind.
func TestGenerateDeterminism(t *testing.T) {
	m := shopModel()
	for _, kind := range AllKinds() {
		first, err := Generate(kind, m, Options{IncludeDrops: true})
		require.NoError(t, err, "kind %s", kind)
		second, err := Generate(kind, m, Options{IncludeDrops: true})
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, first, second, "kind %s", kind)
	}
}

// One class block and one CREATE TABLE per entity, no more, no fewer.
func TestEntityBlockCounts(t *testing.T) {
	m := shopModel()

	entities := mustGenerate(t, KindEntities, m)
	assert.Equal(t, len(m.Entities), strings.Count(entities, "\npublic class "))

	ddl := mustGenerate(t, KindSQLPostgres, m)
	assert.Equal(t, len(m.Entities), strings.Count(ddl, "CREATE TABLE "))

	dtos := mustGenerate(t, KindDTOs, m)
	assert.Equal(t, 3*len(m.Entities), strings.Count(dtos, "\npublic class "))
}

// The synthesized FK property name must agree across the entity class,
// the mapping configuration, the DTO shapes, and the SQL ALTER pass.
func TestForeignKeyNameAgreement(t *testing.T) {
	m := shopModel()

	entities := mustGenerate(t, KindEntities, m)
	assert.Contains(t, entities, "public Guid? UserId { get; set; }")

	context := mustGenerate(t, KindContext, m)
	assert.Contains(t, context, ".HasForeignKey(e => e.UserId)")

	dtos := mustGenerate(t, KindDTOs, m)
	assert.Contains(t, dtos, "public Guid? UserId { get; set; }")

	ddl := mustGenerate(t, KindSQLServer, m)
	assert.Contains(t, ddl, "[UserId]")
}

// Renaming one entity changes identifiers but never the shape of the
// output: block counts and relation statements stay put.
func TestRenameKeepsTopology(t *testing.T) {
	before := shopModel()
	after := shopModelNamed("Invoice")

	for _, kind := range []Kind{KindEntities, KindSQLPostgres, KindSQLServer} {
		a := mustGenerate(t, kind, before)
		b := mustGenerate(t, kind, after)
		assert.Equal(t, strings.Count(a, "public class"), strings.Count(b, "public class"), "kind %s", kind)
		assert.Equal(t, strings.Count(a, "CREATE TABLE"), strings.Count(b, "CREATE TABLE"), "kind %s", kind)
		assert.Equal(t, strings.Count(a, "ALTER TABLE"), strings.Count(b, "ALTER TABLE"), "kind %s", kind)
	}

	renamed := mustGenerate(t, KindEntities, after)
	assert.Contains(t, renamed, "public class Invoice")
	assert.NotContains(t, renamed, "Order")
}

// A relation pointing at a missing entity must behave exactly as if it
// were absent, for every artifact kind.
func TestDanglingRelationSafety(t *testing.T) {
	withGhost := danglingModel(true)
	without := danglingModel(false)

	for _, kind := range AllKinds() {
		a, err := Generate(kind, withGhost, Options{})
		require.NoError(t, err, "kind %s", kind)
		b, err := Generate(kind, without, Options{})
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, b, a, "kind %s", kind)
	}
}

func TestEmptyModelPlaceholders(t *testing.T) {
	m := (&model.DataModel{ID: "dm-empty", Name: "Empty"}).Normalize()

	for _, kind := range AllKinds() {
		out, err := Generate(kind, m, Options{})
		require.NoError(t, err, "kind %s", kind)
		assert.NotEmpty(t, out, "kind %s", kind)
	}

	ddl := mustGenerate(t, KindSQLServer, m)
	assert.NotContains(t, ddl, "CREATE TABLE")
	assert.Contains(t, ddl, "no entities")

	entities := mustGenerate(t, KindEntities, m)
	assert.Contains(t, entities, "no entities")

	api := mustGenerate(t, KindOpenAPI, m)
	var doc struct {
		OpenAPI    string                     `json:"openapi"`
		Paths      map[string]json.RawMessage `json:"paths"`
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(api), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	require.NotNil(t, doc.Paths)
	assert.Empty(t, doc.Paths)
	require.NotNil(t, doc.Components.Schemas)
	assert.Empty(t, doc.Components.Schemas)
}
