package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/naming"
)

// Controllers renders one CRUD API controller per entity: paged list,
// get-by-id, create, update, and delete actions delegating to the
// entity's service. Controllers only orchestrate routing, validation,
// and logging; persistence lives behind the service layer.
func Controllers(m *model.DataModel) (string, error) {
	var b strings.Builder
	b.WriteString(banner)
	if len(m.Entities) == 0 {
		b.WriteString("\n" + emptyNotice)
		return b.String(), nil
	}

	ns := baseNamespace(m)
	b.WriteString("using System;\n")
	b.WriteString("using System.Collections.Generic;\n")
	b.WriteString("using System.Threading.Tasks;\n")
	b.WriteString("using Microsoft.AspNetCore.Mvc;\n")
	b.WriteString("using Microsoft.Extensions.Logging;\n")
	fmt.Fprintf(&b, "using %s.Dtos;\n", ns)
	fmt.Fprintf(&b, "using %s.Services;\n", ns)
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s.Controllers;\n", ns)

	for i := range m.Entities {
		if err := writeController(&b, &m.Entities[i]); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeController(b *strings.Builder, e *model.Entity) error {
	class := e.ClassName()
	controller := pluralPascal(e.Name) + "Controller"
	svcIface := "I" + class + "Service"
	svcParam := naming.CamelCase(e.Name) + "Service"
	svcField := "_" + svcParam
	kt, err := keyType(e)
	if err != nil {
		return err
	}
	keyProp := e.EffectiveKey().Name

	b.WriteString("\n")
	b.WriteString("[ApiController]\n")
	b.WriteString("[Route(\"api/[controller]\")]\n")
	fmt.Fprintf(b, "public class %s : ControllerBase\n", controller)
	b.WriteString("{\n")
	fmt.Fprintf(b, "    private readonly %s %s;\n", svcIface, svcField)
	fmt.Fprintf(b, "    private readonly ILogger<%s> _logger;\n", controller)
	b.WriteString("\n")
	fmt.Fprintf(b, "    public %s(%s %s, ILogger<%s> logger)\n", controller, svcIface, svcParam, controller)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        %s = %s;\n", svcField, svcParam)
	b.WriteString("        _logger = logger;\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    [HttpGet]\n")
	fmt.Fprintf(b, "    public async Task<ActionResult<IEnumerable<%sResponseDto>>> GetAll([FromQuery] int page = 1, [FromQuery] int pageSize = 20)\n", class)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        var result = await %s.GetAllAsync(page, pageSize);\n", svcField)
	b.WriteString("        return Ok(result);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    [HttpGet(\"{id}\")]\n")
	fmt.Fprintf(b, "    public async Task<ActionResult<%sResponseDto>> GetById(%s id)\n", class, kt)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        var result = await %s.GetByIdAsync(id);\n", svcField)
	b.WriteString("        if (result == null)\n")
	b.WriteString("        {\n")
	b.WriteString("            return NotFound();\n")
	b.WriteString("        }\n")
	b.WriteString("        return Ok(result);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    [HttpPost]\n")
	fmt.Fprintf(b, "    public async Task<ActionResult<%sResponseDto>> Create([FromBody] %sCreateDto dto)\n", class, class)
	b.WriteString("    {\n")
	b.WriteString("        if (!ModelState.IsValid)\n")
	b.WriteString("        {\n")
	b.WriteString("            return BadRequest(ModelState);\n")
	b.WriteString("        }\n")
	fmt.Fprintf(b, "        _logger.LogInformation(\"Creating %s\");\n", class)
	fmt.Fprintf(b, "        var created = await %s.CreateAsync(dto);\n", svcField)
	fmt.Fprintf(b, "        return CreatedAtAction(nameof(GetById), new { id = created.%s }, created);\n", keyProp)
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    [HttpPut(\"{id}\")]\n")
	fmt.Fprintf(b, "    public async Task<ActionResult<%sResponseDto>> Update(%s id, [FromBody] %sUpdateDto dto)\n", class, kt, class)
	b.WriteString("    {\n")
	b.WriteString("        if (!ModelState.IsValid)\n")
	b.WriteString("        {\n")
	b.WriteString("            return BadRequest(ModelState);\n")
	b.WriteString("        }\n")
	fmt.Fprintf(b, "        var updated = await %s.UpdateAsync(id, dto);\n", svcField)
	b.WriteString("        if (updated == null)\n")
	b.WriteString("        {\n")
	b.WriteString("            return NotFound();\n")
	b.WriteString("        }\n")
	b.WriteString("        return Ok(updated);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    [HttpDelete(\"{id}\")]\n")
	fmt.Fprintf(b, "    public async Task<IActionResult> Delete(%s id)\n", kt)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        _logger.LogInformation(\"Deleting %s {Id}\", id);\n", class)
	fmt.Fprintf(b, "        var deleted = await %s.DeleteAsync(id);\n", svcField)
	b.WriteString("        if (!deleted)\n")
	b.WriteString("        {\n")
	b.WriteString("            return NotFound();\n")
	b.WriteString("        }\n")
	b.WriteString("        return NoContent();\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return nil
}
