package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
)

// Entities renders one C# class per model entity: declared fields in
// array order, synthesized foreign-key properties for outgoing to-one
// relations, then navigation properties. Output is a single blob in
// model entity order.
func Entities(m *model.DataModel) (string, error) {
	var b strings.Builder
	b.WriteString(banner)
	if len(m.Entities) == 0 {
		b.WriteString("\n" + emptyNotice)
		return b.String(), nil
	}

	b.WriteString("using System;\n")
	b.WriteString("using System.Collections.Generic;\n")
	b.WriteString("using System.ComponentModel.DataAnnotations;\n")
	b.WriteString("using System.ComponentModel.DataAnnotations.Schema;\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s.Models;\n", baseNamespace(m))

	for i := range m.Entities {
		plan, err := planClass(m, &m.Entities[i])
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		if err := writeEntityClass(&b, plan); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeEntityClass(b *strings.Builder, plan *classPlan) error {
	fmt.Fprintf(b, "public class %s\n", plan.class)
	b.WriteString("{\n")
	w := newBlockWriter(b)

	for _, f := range plan.fields {
		lines, err := fieldPropertyLines(f)
		if err != nil {
			return err
		}
		w.write(lines)
	}
	for _, fk := range plan.fks {
		if !fk.synthesize {
			continue
		}
		w.write([]string{fmt.Sprintf("public %s? %s { get; set; }", fk.csType, fk.name)})
	}
	for _, nav := range plan.navs {
		if nav.collection {
			w.write([]string{fmt.Sprintf("public virtual ICollection<%s> %s { get; set; } = new List<%s>();",
				nav.targetType, nav.name, nav.targetType)})
		} else {
			w.write([]string{fmt.Sprintf("public virtual %s? %s { get; set; }", nav.targetType, nav.name)})
		}
	}

	b.WriteString("}\n")
	return nil
}
