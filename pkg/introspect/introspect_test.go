package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marshallshelly/quarry/pkg/model"
)

func TestFieldTypeForColumn(t *testing.T) {
	tests := []struct {
		dataType string
		udtName  string
		want     model.FieldType
	}{
		{"character varying", "varchar", model.TypeString},
		{"text", "text", model.TypeString},
		{"integer", "int4", model.TypeInt},
		{"smallint", "int2", model.TypeInt},
		{"bigint", "int8", model.TypeLong},
		{"numeric", "numeric", model.TypeDecimal},
		{"double precision", "float8", model.TypeDouble},
		{"real", "float4", model.TypeFloat},
		{"boolean", "bool", model.TypeBool},
		{"timestamp without time zone", "timestamp", model.TypeDateTime},
		{"timestamp with time zone", "timestamptz", model.TypeDateTime},
		{"date", "date", model.TypeDateOnly},
		{"time without time zone", "time", model.TypeTimeOnly},
		{"uuid", "uuid", model.TypeGuid},
		{"bytea", "bytea", model.TypeBytes},
		{"jsonb", "jsonb", model.TypeJSON},
		{"json", "json", model.TypeJSON},
		{"USER-DEFINED", "order_status", model.TypeString},
		{"tsvector", "tsvector", model.TypeString},
	}
	for _, tt := range tests {
		got := fieldTypeForColumn(tt.dataType, tt.udtName)
		assert.Equal(t, tt.want, got, "%s/%s", tt.dataType, tt.udtName)
	}
}

func TestNormalizeDefault(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"gen_random_uuid()", "newguid", true},
		{"uuid_generate_v4()", "newguid", true},
		{"now()", "now", true},
		{"CURRENT_TIMESTAMP", "now", true},
		{"timezone('utc'::text, now())", "utcnow", true},
		{"(now() AT TIME ZONE 'utc')", "utcnow", true},
		{"'active'::character varying", "active", true},
		{"'it''s fine'::text", "it's fine", true},
		{"0", "0", true},
		{"42.5", "42.5", true},
		{"true", "true", true},
		{"''::text", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeDefault(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, "raw %q", tt.raw)
		}
	}
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, model.Cascade, parseAction("CASCADE"))
	assert.Equal(t, model.SetNull, parseAction("SET NULL"))
	assert.Equal(t, model.Restrict, parseAction("RESTRICT"))
	assert.Equal(t, model.NoAction, parseAction("NO ACTION"))
	assert.Equal(t, model.NoAction, parseAction("SET DEFAULT"))
	assert.Equal(t, model.Cascade, parseAction("cascade"))
}

func TestResolveIndexSkipsUnknownColumns(t *testing.T) {
	e := &model.Entity{
		ID: "e-1",
		Fields: []model.Field{
			{ID: "f-a", Name: "Email", Type: model.TypeString},
			{ID: "f-b", Name: "Name", Type: model.TypeString},
		},
	}

	idx, ok := resolveIndex(e, "ix_users_email", []string{"Email"}, true)
	assert.True(t, ok)
	assert.Equal(t, []string{"f-a"}, idx.FieldIDs)
	assert.True(t, idx.IsUnique)
	assert.Equal(t, "ix_users_email", idx.Name)
	assert.Equal(t, "e-1", idx.EntityID)

	_, ok = resolveIndex(e, "ix_expr", []string{"lower(Email)"}, false)
	assert.False(t, ok)

	_, ok = resolveIndex(e, "ix_partial", []string{"Email", "UserId"}, false)
	assert.False(t, ok)
}

func TestRemoveField(t *testing.T) {
	e := &model.Entity{
		Fields: []model.Field{
			{ID: "f-a", Name: "Id"},
			{ID: "f-b", Name: "UserId"},
			{ID: "f-c", Name: "Total"},
		},
	}
	removeField(e, "UserId")

	assert.Len(t, e.Fields, 2)
	assert.Nil(t, e.FieldByName("UserId"))
	assert.NotNil(t, e.FieldByName("Total"))
}
