package codegen

import (
	"encoding/json"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/naming"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

// The document structs cover exactly the subset of OpenAPI 3.0.3 the
// generator emits. encoding/json sorts map keys, so path and schema
// ordering in the output is deterministic.

type oaDocument struct {
	OpenAPI    string                 `json:"openapi"`
	Info       oaInfo                 `json:"info"`
	Servers    []oaServer             `json:"servers"`
	Paths      map[string]*oaPathItem `json:"paths"`
	Components oaComponents           `json:"components"`
}

type oaInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type oaServer struct {
	URL string `json:"url"`
}

type oaComponents struct {
	Schemas map[string]*oaSchema `json:"schemas"`
}

type oaSchema struct {
	Ref        string               `json:"$ref,omitempty"`
	Type       string               `json:"type,omitempty"`
	Format     string               `json:"format,omitempty"`
	Nullable   bool                 `json:"nullable,omitempty"`
	Properties map[string]*oaSchema `json:"properties,omitempty"`
	Items      *oaSchema            `json:"items,omitempty"`
	Required   []string             `json:"required,omitempty"`
}

type oaPathItem struct {
	Get    *oaOperation `json:"get,omitempty"`
	Post   *oaOperation `json:"post,omitempty"`
	Put    *oaOperation `json:"put,omitempty"`
	Delete *oaOperation `json:"delete,omitempty"`
}

type oaOperation struct {
	Parameters  []oaParameter          `json:"parameters,omitempty"`
	RequestBody *oaRequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*oaResponse `json:"responses"`
}

type oaParameter struct {
	Name     string    `json:"name"`
	In       string    `json:"in"`
	Required bool      `json:"required,omitempty"`
	Schema   *oaSchema `json:"schema"`
}

type oaRequestBody struct {
	Required bool                    `json:"required,omitempty"`
	Content  map[string]*oaMediaType `json:"content"`
}

type oaMediaType struct {
	Schema *oaSchema `json:"schema"`
}

type oaResponse struct {
	Description string                  `json:"description"`
	Content     map[string]*oaMediaType `json:"content,omitempty"`
}

// OpenAPI renders a 3.0.3 document describing the generated REST API:
// three component schemas per entity mirroring the DTO shapes, plus a
// collection path and an item path per entity. A model with no entities
// produces a minimal valid document with empty paths and schemas.
func OpenAPI(m *model.DataModel) (string, error) {
	doc := oaDocument{
		OpenAPI: "3.0.3",
		Info: oaInfo{
			Title:       strings.TrimSpace(m.Name + " API"),
			Description: m.Description,
			Version:     m.Version,
		},
		Servers: []oaServer{
			{URL: "https://localhost:5001"},
			{URL: "http://localhost:5000"},
		},
		Paths:      map[string]*oaPathItem{},
		Components: oaComponents{Schemas: map[string]*oaSchema{}},
	}
	if doc.Info.Version == "" {
		doc.Info.Version = "1.0.0"
	}

	for i := range m.Entities {
		e := &m.Entities[i]
		plan, err := planClass(m, e)
		if err != nil {
			return "", err
		}
		if err := addEntitySchemas(doc.Components.Schemas, m, plan); err != nil {
			return "", err
		}
		if err := addEntityPaths(doc.Paths, e); err != nil {
			return "", err
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

func fieldSchema(f *model.Field) (*oaSchema, error) {
	typ, format, err := typemap.OpenAPI(f.Type)
	if err != nil {
		return nil, err
	}
	return &oaSchema{Type: typ, Format: format}, nil
}

// addEntitySchemas registers the three DTO schemas for one entity.
// Property names are camelCase; non-required properties carry
// nullable: true, and only non-nullable properties appear in the
// required array.
func addEntitySchemas(schemas map[string]*oaSchema, m *model.DataModel, plan *classPlan) error {
	response := &oaSchema{Type: "object", Properties: map[string]*oaSchema{}}
	create := &oaSchema{Type: "object", Properties: map[string]*oaSchema{}}
	update := &oaSchema{Type: "object", Properties: map[string]*oaSchema{}}

	for _, f := range plan.fields {
		name := naming.CamelCase(f.Name)
		required := f.IsRequired || f.IsPrimaryKey

		rs, err := fieldSchema(f)
		if err != nil {
			return err
		}
		rs.Nullable = !required
		response.Properties[name] = rs
		if required {
			response.Required = append(response.Required, name)
		}

		if f.IsPrimaryKey {
			continue
		}

		cs, err := fieldSchema(f)
		if err != nil {
			return err
		}
		cs.Nullable = !f.IsRequired
		create.Properties[name] = cs
		if f.IsRequired {
			create.Required = append(create.Required, name)
		}

		us, err := fieldSchema(f)
		if err != nil {
			return err
		}
		us.Nullable = true
		update.Properties[name] = us
	}

	for _, fk := range plan.fks {
		if !fk.synthesize {
			continue
		}
		target := m.EntityByID(fk.relation.TargetEntityID)
		if target == nil {
			continue
		}
		key := target.EffectiveKey()
		name := naming.CamelCase(fk.name)
		for _, s := range []*oaSchema{response, create, update} {
			fs, err := fieldSchema(&key)
			if err != nil {
				return err
			}
			fs.Nullable = true
			s.Properties[name] = fs
		}
	}

	schemas[plan.class+"ResponseDto"] = response
	schemas[plan.class+"CreateDto"] = create
	schemas[plan.class+"UpdateDto"] = update
	return nil
}

// addEntityPaths registers the collection and item path for one entity,
// matching the routes and status codes the controller generator emits.
func addEntityPaths(paths map[string]*oaPathItem, e *model.Entity) error {
	class := e.ClassName()
	base := "/api/" + naming.CamelCase(pluralPascal(e.Name))
	key := e.EffectiveKey()
	keySchema, err := fieldSchema(&key)
	if err != nil {
		return err
	}
	idParam := oaParameter{Name: "id", In: "path", Required: true, Schema: keySchema}
	pageParams := []oaParameter{
		{Name: "page", In: "query", Schema: &oaSchema{Type: "integer", Format: "int32"}},
		{Name: "pageSize", In: "query", Schema: &oaSchema{Type: "integer", Format: "int32"}},
	}

	paths[base] = &oaPathItem{
		Get: &oaOperation{
			Parameters: pageParams,
			Responses: map[string]*oaResponse{
				"200": {Description: "Success", Content: jsonContent(arrayOf(refSchema(class + "ResponseDto")))},
			},
		},
		Post: &oaOperation{
			RequestBody: &oaRequestBody{Required: true, Content: jsonContent(refSchema(class + "CreateDto"))},
			Responses: map[string]*oaResponse{
				"201": {Description: "Created", Content: jsonContent(refSchema(class + "ResponseDto"))},
				"400": {Description: "Bad Request"},
			},
		},
	}

	paths[base+"/{id}"] = &oaPathItem{
		Get: &oaOperation{
			Parameters: []oaParameter{idParam},
			Responses: map[string]*oaResponse{
				"200": {Description: "Success", Content: jsonContent(refSchema(class + "ResponseDto"))},
				"404": {Description: "Not Found"},
			},
		},
		Put: &oaOperation{
			Parameters:  []oaParameter{idParam},
			RequestBody: &oaRequestBody{Required: true, Content: jsonContent(refSchema(class + "UpdateDto"))},
			Responses: map[string]*oaResponse{
				"200": {Description: "Success", Content: jsonContent(refSchema(class + "ResponseDto"))},
				"400": {Description: "Bad Request"},
				"404": {Description: "Not Found"},
			},
		},
		Delete: &oaOperation{
			Parameters: []oaParameter{idParam},
			Responses: map[string]*oaResponse{
				"204": {Description: "No Content"},
				"404": {Description: "Not Found"},
			},
		},
	}
	return nil
}

func refSchema(name string) *oaSchema {
	return &oaSchema{Ref: "#/components/schemas/" + name}
}

func arrayOf(items *oaSchema) *oaSchema {
	return &oaSchema{Type: "array", Items: items}
}

func jsonContent(s *oaSchema) map[string]*oaMediaType {
	return map[string]*oaMediaType{"application/json": {Schema: s}}
}
