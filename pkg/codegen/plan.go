package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/naming"
	"github.com/marshallshelly/quarry/pkg/render"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

// banner opens every generated C# artifact so downstream tooling skips
// analysis on it.
const banner = "// <auto-generated/>\n"

// emptyNotice is the placeholder body for artifacts generated from a
// model with no entities.
const emptyNotice = "// The model contains no entities; nothing to generate.\n"

// baseNamespace derives the root C# namespace from the model name,
// falling back to App when sanitization leaves nothing.
func baseNamespace(m *model.DataModel) string {
	ns := naming.SanitizeIdentifier(naming.PascalCase(m.Name))
	if ns == "" {
		return "App"
	}
	return ns
}

// contextClass is the generated DbContext class name.
func contextClass(m *model.DataModel) string {
	return baseNamespace(m) + "DbContext"
}

// pluralPascal is the collection form of an entity name: DbSet names,
// collection navigations, controller names, and route segments all use
// it.
func pluralPascal(name string) string {
	return naming.Plural(naming.PascalCase(name))
}

// fkName is the conventional foreign-key property name for a relation
// targeting the entity. Every generator that references a foreign key
// derives the name from this one function so the artifacts agree.
func fkName(target *model.Entity) string {
	return naming.PascalCase(target.Name) + "Id"
}

// fkProp is the foreign-key property for an outgoing to-one relation.
// synthesize is false when a declared field already carries the
// conventional name; the name is still recorded for mapping references.
type fkProp struct {
	relation   model.Relation
	name       string
	csType     string
	synthesize bool
}

// navProp is a navigation property: a scalar reference or a collection.
type navProp struct {
	name       string
	targetType string
	collection bool
}

// classPlan is the property layout for one entity class: declared
// fields in array order, then synthesized foreign keys, then navigation
// properties, deduplicated by property name. The entity, DTO, and
// mapping generators all derive property names from the same plan to
// stay byte-compatible with each other.
type classPlan struct {
	entity *model.Entity
	class  string
	fields []*model.Field
	fks    []fkProp
	navs   []navProp
}

// planClass computes the emission plan for one entity. Relations whose
// other endpoint is missing from the model are skipped entirely.
func planClass(m *model.DataModel, e *model.Entity) (*classPlan, error) {
	plan := &classPlan{entity: e, class: e.ClassName()}
	used := make(map[string]bool, len(e.Fields))
	for i := range e.Fields {
		f := &e.Fields[i]
		plan.fields = append(plan.fields, f)
		used[f.Name] = true
	}

	outgoing, incoming := m.RelationsOf(e.ID)

	for _, r := range outgoing {
		if r.Cardinality == model.ManyToMany {
			continue
		}
		target := m.EntityByID(r.TargetEntityID)
		if target == nil {
			continue
		}
		key := target.EffectiveKey()
		csType, err := typemap.CSharp(key.Type)
		if err != nil {
			return nil, err
		}
		name := fkName(target)
		plan.fks = append(plan.fks, fkProp{
			relation:   r,
			name:       name,
			csType:     csType,
			synthesize: !used[name],
		})
		used[name] = true
	}

	// Navigation emission is a tagged match over cardinality and
	// direction: outgoing to-one scalars, outgoing many-to-many
	// collections, incoming one-to-many collections, incoming
	// one-to-one scalars. Incoming many-to-many only emits when the
	// entity has no reciprocal outgoing record back to the source,
	// which would have produced the same collection already.
	for _, r := range outgoing {
		if r.Cardinality == model.ManyToMany {
			continue
		}
		if target := m.EntityByID(r.TargetEntityID); target != nil {
			plan.addNav(used, navProp{name: naming.PascalCase(target.Name), targetType: target.ClassName()})
		}
	}
	for _, r := range outgoing {
		if r.Cardinality != model.ManyToMany {
			continue
		}
		if target := m.EntityByID(r.TargetEntityID); target != nil {
			plan.addNav(used, navProp{name: pluralPascal(target.Name), targetType: target.ClassName(), collection: true})
		}
	}
	for _, r := range incoming {
		if r.Cardinality != model.OneToMany {
			continue
		}
		if source := m.EntityByID(r.SourceEntityID); source != nil {
			plan.addNav(used, navProp{name: pluralPascal(source.Name), targetType: source.ClassName(), collection: true})
		}
	}
	for _, r := range incoming {
		if r.Cardinality != model.OneToOne {
			continue
		}
		if source := m.EntityByID(r.SourceEntityID); source != nil {
			plan.addNav(used, navProp{name: naming.PascalCase(source.Name), targetType: source.ClassName()})
		}
	}
	for _, r := range incoming {
		if r.Cardinality != model.ManyToMany || hasReciprocal(m, e, r) {
			continue
		}
		if source := m.EntityByID(r.SourceEntityID); source != nil {
			plan.addNav(used, navProp{name: pluralPascal(source.Name), targetType: source.ClassName(), collection: true})
		}
	}

	return plan, nil
}

func (p *classPlan) addNav(used map[string]bool, nav navProp) {
	if used[nav.name] {
		return
	}
	used[nav.name] = true
	p.navs = append(p.navs, nav)
}

// hasReciprocal reports whether e declares its own outgoing
// many-to-many relation back to the source of r.
func hasReciprocal(m *model.DataModel, e *model.Entity, r model.Relation) bool {
	for _, other := range m.Relations {
		if other.ID == r.ID {
			continue
		}
		if other.Cardinality == model.ManyToMany &&
			other.SourceEntityID == e.ID &&
			other.TargetEntityID == r.SourceEntityID {
			return true
		}
	}
	return false
}

// blockWriter writes property blocks inside a class body, separating
// consecutive blocks with a blank line.
type blockWriter struct {
	b     *strings.Builder
	first bool
}

func newBlockWriter(b *strings.Builder) *blockWriter {
	return &blockWriter{b: b, first: true}
}

func (w *blockWriter) write(lines []string) {
	if !w.first {
		w.b.WriteString("\n")
	}
	w.first = false
	for _, ln := range lines {
		w.b.WriteString("    " + ln + "\n")
	}
}

// fieldPropertyLines renders one declared field as its annotation lines
// plus the property declaration.
func fieldPropertyLines(f *model.Field) ([]string, error) {
	lines := render.Annotations(f)
	typ, err := render.PropertyType(f)
	if err != nil {
		return nil, err
	}
	decl := fmt.Sprintf("public %s %s { get; set; }", typ, f.Name)
	if init, ok := render.PropertyInitializer(f); ok {
		decl = fmt.Sprintf("public %s %s { get; set; } = %s;", typ, f.Name, init)
	}
	return append(lines, decl), nil
}

// keyType returns the C# type of the entity's effective primary key.
func keyType(e *model.Entity) (string, error) {
	key := e.EffectiveKey()
	return typemap.CSharp(key.Type)
}
