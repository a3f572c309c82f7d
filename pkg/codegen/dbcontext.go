package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/naming"
	"github.com/marshallshelly/quarry/pkg/render"
	"github.com/marshallshelly/quarry/pkg/typemap"
)

// Context renders the EF Core DbContext: one DbSet per entity and an
// OnModelCreating body with a configuration block per entity covering
// table mapping, key declaration, unique indexes, decimal precision,
// json column types, and relationship wiring, plus standalone
// configuration for every model-level composite index.
func Context(m *model.DataModel) (string, error) {
	var b strings.Builder
	b.WriteString(banner)
	if len(m.Entities) == 0 {
		b.WriteString("\n" + emptyNotice)
		return b.String(), nil
	}

	ns := baseNamespace(m)
	ctx := contextClass(m)

	b.WriteString("using Microsoft.EntityFrameworkCore;\n")
	fmt.Fprintf(&b, "using %s.Models;\n", ns)
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s.Data;\n", ns)
	b.WriteString("\n")
	fmt.Fprintf(&b, "public class %s : DbContext\n", ctx)
	b.WriteString("{\n")
	fmt.Fprintf(&b, "    public %s(DbContextOptions<%s> options) : base(options)\n", ctx, ctx)
	b.WriteString("    {\n")
	b.WriteString("    }\n")
	b.WriteString("\n")
	for i := range m.Entities {
		e := &m.Entities[i]
		fmt.Fprintf(&b, "    public DbSet<%s> %s { get; set; }\n", e.ClassName(), pluralPascal(e.Name))
	}
	b.WriteString("\n")
	b.WriteString("    protected override void OnModelCreating(ModelBuilder modelBuilder)\n")
	b.WriteString("    {\n")

	for i := range m.Entities {
		if err := writeEntityConfig(&b, m, &m.Entities[i]); err != nil {
			return "", err
		}
		b.WriteString("\n")
	}

	writeIndexConfigs(&b, m)

	b.WriteString("        base.OnModelCreating(modelBuilder);\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String(), nil
}

func writeEntityConfig(b *strings.Builder, m *model.DataModel, e *model.Entity) error {
	fmt.Fprintf(b, "        modelBuilder.Entity<%s>(entity =>\n", e.ClassName())
	b.WriteString("        {\n")

	if e.Schema != "" {
		fmt.Fprintf(b, "            entity.ToTable(%q, %q);\n", e.TableName(), e.Schema)
	} else {
		fmt.Fprintf(b, "            entity.ToTable(%q);\n", e.TableName())
	}
	key := e.EffectiveKey()
	fmt.Fprintf(b, "            entity.HasKey(e => e.%s);\n", key.Name)

	for i := range e.Fields {
		f := &e.Fields[i]
		if f.IsUnique && !f.IsPrimaryKey {
			fmt.Fprintf(b, "            entity.HasIndex(e => e.%s).IsUnique();\n", f.Name)
		}
	}
	for i := range e.Fields {
		f := &e.Fields[i]
		if f.Type == model.TypeDecimal {
			if p, s, explicit := typemap.DecimalArgs(f); explicit {
				fmt.Fprintf(b, "            entity.Property(e => e.%s).HasPrecision(%d, %d);\n", f.Name, p, s)
			}
		}
		if f.Type == model.TypeJSON {
			colType, err := typemap.SQL(m.TargetDialect, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "            entity.Property(e => e.%s).HasColumnType(%q);\n", f.Name, strings.ToLower(colType))
		}
	}

	outgoing, _ := m.RelationsOf(e.ID)
	for _, r := range outgoing {
		writeRelationConfig(b, m, e, r)
	}

	b.WriteString("        });\n")
	return nil
}

func writeRelationConfig(b *strings.Builder, m *model.DataModel, e *model.Entity, r model.Relation) {
	target := m.EntityByID(r.TargetEntityID)
	if target == nil {
		return
	}
	switch r.Cardinality {
	case model.OneToMany:
		fmt.Fprintf(b, "            entity.HasOne(e => e.%s)\n", naming.PascalCase(target.Name))
		fmt.Fprintf(b, "                .WithMany(e => e.%s)\n", pluralPascal(e.Name))
		fmt.Fprintf(b, "                .HasForeignKey(e => e.%s)\n", fkName(target))
		fmt.Fprintf(b, "                .OnDelete(DeleteBehavior.%s);\n", render.DeleteBehavior(r.OnDelete))
	case model.OneToOne:
		fmt.Fprintf(b, "            entity.HasOne(e => e.%s)\n", naming.PascalCase(target.Name))
		fmt.Fprintf(b, "                .WithOne(e => e.%s)\n", naming.PascalCase(e.Name))
		fmt.Fprintf(b, "                .HasForeignKey<%s>(e => e.%s)\n", e.ClassName(), fkName(target))
		fmt.Fprintf(b, "                .OnDelete(DeleteBehavior.%s);\n", render.DeleteBehavior(r.OnDelete))
	case model.ManyToMany:
		fmt.Fprintf(b, "            entity.HasMany(e => e.%s)\n", pluralPascal(target.Name))
		fmt.Fprintf(b, "                .WithMany(e => e.%s)\n", pluralPascal(e.Name))
		fmt.Fprintf(b, "                .UsingEntity(%q);\n", naming.PascalCase(e.Name)+naming.PascalCase(target.Name))
	}
}

func writeIndexConfigs(b *strings.Builder, m *model.DataModel) {
	for _, idx := range m.Indexes {
		e := m.EntityByID(idx.EntityID)
		if e == nil {
			continue
		}
		var props []string
		for _, fid := range idx.FieldIDs {
			if f := e.FieldByID(fid); f != nil {
				props = append(props, "e."+f.Name)
			}
		}
		if len(props) == 0 {
			continue
		}
		selector := props[0]
		if len(props) > 1 {
			selector = "new { " + strings.Join(props, ", ") + " }"
		}
		fmt.Fprintf(b, "        modelBuilder.Entity<%s>()\n", e.ClassName())
		if idx.Name != "" {
			fmt.Fprintf(b, "            .HasIndex(e => %s, %q)", selector, idx.Name)
		} else {
			fmt.Fprintf(b, "            .HasIndex(e => %s)", selector)
		}
		if idx.IsUnique {
			b.WriteString("\n            .IsUnique()")
		}
		if idx.IsClustered {
			b.WriteString("\n            .IsClustered()")
		}
		b.WriteString(";\n\n")
	}
}
