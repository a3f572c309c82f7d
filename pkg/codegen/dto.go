package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/render"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

// DTOs renders three shapes per entity: a Create DTO without the
// primary key, an Update DTO with every non-key property optional, and
// a Response DTO mirroring the full entity shape without write-time
// validation. Foreign-key properties appear in all three shapes under
// the same names the entity classes use.
func DTOs(m *model.DataModel) (string, error) {
	var b strings.Builder
	b.WriteString(banner)
	if len(m.Entities) == 0 {
		b.WriteString("\n" + emptyNotice)
		return b.String(), nil
	}

	b.WriteString("using System;\n")
	b.WriteString("using System.ComponentModel.DataAnnotations;\n")
	b.WriteString("using System.ComponentModel.DataAnnotations.Schema;\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s.Dtos;\n", baseNamespace(m))

	for i := range m.Entities {
		plan, err := planClass(m, &m.Entities[i])
		if err != nil {
			return "", err
		}
		if err := writeCreateDto(&b, plan); err != nil {
			return "", err
		}
		if err := writeUpdateDto(&b, plan); err != nil {
			return "", err
		}
		if err := writeResponseDto(&b, plan); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeCreateDto(b *strings.Builder, plan *classPlan) error {
	b.WriteString("\n")
	fmt.Fprintf(b, "public class %sCreateDto\n", plan.class)
	b.WriteString("{\n")
	w := newBlockWriter(b)

	for _, f := range plan.fields {
		if f.IsPrimaryKey {
			continue
		}
		typ, err := render.PropertyType(f)
		if err != nil {
			return err
		}
		decl := fmt.Sprintf("public %s %s { get; set; }", typ, f.Name)
		if init, ok := render.PropertyInitializer(f); ok {
			decl = fmt.Sprintf("public %s %s { get; set; } = %s;", typ, f.Name, init)
		}
		w.write(append(render.ValidationAnnotations(f, true), decl))
	}
	writeFkProps(w, plan)

	b.WriteString("}\n")
	return nil
}

func writeUpdateDto(b *strings.Builder, plan *classPlan) error {
	b.WriteString("\n")
	fmt.Fprintf(b, "public class %sUpdateDto\n", plan.class)
	b.WriteString("{\n")
	w := newBlockWriter(b)

	for _, f := range plan.fields {
		if f.IsPrimaryKey {
			continue
		}
		base, err := typemap.CSharp(f.Type)
		if err != nil {
			return err
		}
		decl := fmt.Sprintf("public %s? %s { get; set; }", base, f.Name)
		w.write(append(render.ValidationAnnotations(f, false), decl))
	}
	writeFkProps(w, plan)

	b.WriteString("}\n")
	return nil
}

func writeResponseDto(b *strings.Builder, plan *classPlan) error {
	b.WriteString("\n")
	fmt.Fprintf(b, "public class %sResponseDto\n", plan.class)
	b.WriteString("{\n")
	w := newBlockWriter(b)

	for _, f := range plan.fields {
		typ, err := render.PropertyType(f)
		if err != nil {
			return err
		}
		decl := fmt.Sprintf("public %s %s { get; set; }", typ, f.Name)
		if init, ok := render.PropertyInitializer(f); ok {
			decl = fmt.Sprintf("public %s %s { get; set; } = %s;", typ, f.Name, init)
		}
		w.write([]string{decl})
	}
	writeFkProps(w, plan)

	b.WriteString("}\n")
	return nil
}

// writeFkProps emits the synthesized foreign-key properties shared by
// all three DTO shapes.
func writeFkProps(w *blockWriter, plan *classPlan) {
	for _, fk := range plan.fks {
		if !fk.synthesize {
			continue
		}
		w.write([]string{fmt.Sprintf("public %s? %s { get; set; }", fk.csType, fk.name)})
	}
}
