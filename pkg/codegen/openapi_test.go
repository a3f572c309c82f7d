package codegen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/quarry/pkg/model"
)

func decodeOpenAPI(t *testing.T, m *model.DataModel) oaDocument {
	t.Helper()
	out := mustGenerate(t, KindOpenAPI, m)
	var doc oaDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	return doc
}

func TestOpenAPIDocumentSkeleton(t *testing.T) {
	doc := decodeOpenAPI(t, shopModel())

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Shop API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	require.Len(t, doc.Servers, 2)
	assert.Equal(t, "https://localhost:5001", doc.Servers[0].URL)
	assert.Equal(t, "http://localhost:5000", doc.Servers[1].URL)
	assert.Len(t, doc.Components.Schemas, 6)
	assert.Len(t, doc.Paths, 4)
}

func TestOpenAPISchemasMirrorDtoShapes(t *testing.T) {
	doc := decodeOpenAPI(t, shopModel())

	response := doc.Components.Schemas["UserResponseDto"]
	require.NotNil(t, response)
	assert.Equal(t, "object", response.Type)
	require.Contains(t, response.Properties, "id")
	assert.Equal(t, "string", response.Properties["id"].Type)
	assert.Equal(t, "uuid", response.Properties["id"].Format)
	assert.False(t, response.Properties["id"].Nullable)
	assert.Equal(t, []string{"id", "email"}, response.Required)

	create := doc.Components.Schemas["UserCreateDto"]
	require.NotNil(t, create)
	assert.NotContains(t, create.Properties, "id")
	assert.Equal(t, []string{"email"}, create.Required)

	update := doc.Components.Schemas["UserUpdateDto"]
	require.NotNil(t, update)
	assert.Empty(t, update.Required)
	require.Contains(t, update.Properties, "email")
	assert.True(t, update.Properties["email"].Nullable)
}

func TestOpenAPIForeignKeyProperty(t *testing.T) {
	doc := decodeOpenAPI(t, shopModel())

	response := doc.Components.Schemas["OrderResponseDto"]
	require.NotNil(t, response)
	fk := response.Properties["userId"]
	require.NotNil(t, fk)
	assert.Equal(t, "string", fk.Type)
	assert.Equal(t, "uuid", fk.Format)
	assert.True(t, fk.Nullable)
}

func TestOpenAPIPaths(t *testing.T) {
	doc := decodeOpenAPI(t, shopModel())

	collection := doc.Paths["/api/users"]
	require.NotNil(t, collection)
	require.NotNil(t, collection.Get)
	require.Len(t, collection.Get.Parameters, 2)
	assert.Equal(t, "page", collection.Get.Parameters[0].Name)
	assert.Equal(t, "query", collection.Get.Parameters[0].In)
	assert.Equal(t, "pageSize", collection.Get.Parameters[1].Name)

	listSchema := collection.Get.Responses["200"].Content["application/json"].Schema
	require.NotNil(t, listSchema)
	assert.Equal(t, "array", listSchema.Type)
	assert.Equal(t, "#/components/schemas/UserResponseDto", listSchema.Items.Ref)

	require.NotNil(t, collection.Post)
	require.NotNil(t, collection.Post.RequestBody)
	assert.True(t, collection.Post.RequestBody.Required)
	assert.Equal(t, "#/components/schemas/UserCreateDto", collection.Post.RequestBody.Content["application/json"].Schema.Ref)
	assert.Contains(t, collection.Post.Responses, "201")
	assert.Contains(t, collection.Post.Responses, "400")

	item := doc.Paths["/api/users/{id}"]
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	require.Len(t, item.Get.Parameters, 1)
	assert.Equal(t, "id", item.Get.Parameters[0].Name)
	assert.Equal(t, "path", item.Get.Parameters[0].In)
	assert.True(t, item.Get.Parameters[0].Required)
	assert.Equal(t, "uuid", item.Get.Parameters[0].Schema.Format)
	assert.Contains(t, item.Get.Responses, "200")
	assert.Contains(t, item.Get.Responses, "404")

	require.NotNil(t, item.Put)
	assert.Equal(t, "#/components/schemas/UserUpdateDto", item.Put.RequestBody.Content["application/json"].Schema.Ref)
	assert.Contains(t, item.Put.Responses, "400")

	require.NotNil(t, item.Delete)
	assert.Contains(t, item.Delete.Responses, "204")
	assert.Contains(t, item.Delete.Responses, "404")
}

func TestOpenAPIInfoFallbacks(t *testing.T) {
	m := userModel()
	m.Name = ""
	m.Version = "2.1.0"
	m.Description = "Customer accounts"

	doc := decodeOpenAPI(t, m)
	assert.Equal(t, "API", doc.Info.Title)
	assert.Equal(t, "2.1.0", doc.Info.Version)
	assert.Equal(t, "Customer accounts", doc.Info.Description)
}
