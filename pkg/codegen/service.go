package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/naming"
)

// Services renders one service interface and implementation per entity.
// Services sit between controllers and repositories: they accept and
// return DTOs, using AutoMapper to translate to and from entities.
func Services(m *model.DataModel) (string, error) {
	var b strings.Builder
	b.WriteString(banner)
	if len(m.Entities) == 0 {
		b.WriteString("\n" + emptyNotice)
		return b.String(), nil
	}

	ns := baseNamespace(m)
	b.WriteString("using System;\n")
	b.WriteString("using System.Collections.Generic;\n")
	b.WriteString("using System.Threading;\n")
	b.WriteString("using System.Threading.Tasks;\n")
	b.WriteString("using AutoMapper;\n")
	fmt.Fprintf(&b, "using %s.Data;\n", ns)
	fmt.Fprintf(&b, "using %s.Dtos;\n", ns)
	fmt.Fprintf(&b, "using %s.Models;\n", ns)
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s.Services;\n", ns)

	for i := range m.Entities {
		if err := writeService(&b, &m.Entities[i]); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeService(b *strings.Builder, e *model.Entity) error {
	class := e.ClassName()
	kt, err := keyType(e)
	if err != nil {
		return err
	}
	repoIface := "I" + class + "Repository"
	repoField := "_" + naming.CamelCase(e.Name) + "Repository"
	repoParam := naming.CamelCase(e.Name) + "Repository"

	b.WriteString("\n")
	fmt.Fprintf(b, "public interface I%sService\n", class)
	b.WriteString("{\n")
	fmt.Fprintf(b, "    Task<IEnumerable<%sResponseDto>> GetAllAsync(int page, int pageSize, CancellationToken cancellationToken = default);\n", class)
	fmt.Fprintf(b, "    Task<%sResponseDto?> GetByIdAsync(%s id, CancellationToken cancellationToken = default);\n", class, kt)
	fmt.Fprintf(b, "    Task<%sResponseDto> CreateAsync(%sCreateDto dto, CancellationToken cancellationToken = default);\n", class, class)
	fmt.Fprintf(b, "    Task<%sResponseDto?> UpdateAsync(%s id, %sUpdateDto dto, CancellationToken cancellationToken = default);\n", class, kt, class)
	fmt.Fprintf(b, "    Task<bool> DeleteAsync(%s id, CancellationToken cancellationToken = default);\n", kt)
	b.WriteString("}\n")

	b.WriteString("\n")
	fmt.Fprintf(b, "public class %sService : I%sService\n", class, class)
	b.WriteString("{\n")
	fmt.Fprintf(b, "    private readonly %s %s;\n", repoIface, repoField)
	b.WriteString("    private readonly IMapper _mapper;\n")
	b.WriteString("\n")
	fmt.Fprintf(b, "    public %sService(%s %s, IMapper mapper)\n", class, repoIface, repoParam)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        %s = %s;\n", repoField, repoParam)
	b.WriteString("        _mapper = mapper;\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	fmt.Fprintf(b, "    public async Task<IEnumerable<%sResponseDto>> GetAllAsync(int page, int pageSize, CancellationToken cancellationToken = default)\n", class)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        var entities = await %s.GetPagedAsync(page, pageSize, cancellationToken);\n", repoField)
	fmt.Fprintf(b, "        return _mapper.Map<IEnumerable<%sResponseDto>>(entities);\n", class)
	b.WriteString("    }\n")

	b.WriteString("\n")
	fmt.Fprintf(b, "    public async Task<%sResponseDto?> GetByIdAsync(%s id, CancellationToken cancellationToken = default)\n", class, kt)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        var entity = await %s.GetByIdAsync(id, cancellationToken);\n", repoField)
	b.WriteString("        if (entity == null)\n")
	b.WriteString("        {\n")
	b.WriteString("            return null;\n")
	b.WriteString("        }\n")
	fmt.Fprintf(b, "        return _mapper.Map<%sResponseDto>(entity);\n", class)
	b.WriteString("    }\n")

	b.WriteString("\n")
	fmt.Fprintf(b, "    public async Task<%sResponseDto> CreateAsync(%sCreateDto dto, CancellationToken cancellationToken = default)\n", class, class)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        var entity = _mapper.Map<%s>(dto);\n", class)
	fmt.Fprintf(b, "        var created = await %s.AddAsync(entity, cancellationToken);\n", repoField)
	fmt.Fprintf(b, "        return _mapper.Map<%sResponseDto>(created);\n", class)
	b.WriteString("    }\n")

	b.WriteString("\n")
	fmt.Fprintf(b, "    public async Task<%sResponseDto?> UpdateAsync(%s id, %sUpdateDto dto, CancellationToken cancellationToken = default)\n", class, kt, class)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        var entity = await %s.GetByIdAsync(id, cancellationToken);\n", repoField)
	b.WriteString("        if (entity == null)\n")
	b.WriteString("        {\n")
	b.WriteString("            return null;\n")
	b.WriteString("        }\n")
	b.WriteString("        _mapper.Map(dto, entity);\n")
	fmt.Fprintf(b, "        var updated = await %s.UpdateAsync(entity, cancellationToken);\n", repoField)
	fmt.Fprintf(b, "        return _mapper.Map<%sResponseDto>(updated);\n", class)
	b.WriteString("    }\n")

	b.WriteString("\n")
	fmt.Fprintf(b, "    public async Task<bool> DeleteAsync(%s id, CancellationToken cancellationToken = default)\n", kt)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        var entity = await %s.GetByIdAsync(id, cancellationToken);\n", repoField)
	b.WriteString("        if (entity == null)\n")
	b.WriteString("        {\n")
	b.WriteString("            return false;\n")
	b.WriteString("        }\n")
	fmt.Fprintf(b, "        await %s.DeleteAsync(entity, cancellationToken);\n", repoField)
	b.WriteString("        return true;\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return nil
}
