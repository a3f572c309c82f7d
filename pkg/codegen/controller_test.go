package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marshallshelly/quarry/pkg/model"
)

func TestControllersCrudSurface(t *testing.T) {
	out := mustGenerate(t, KindControllers, userModel())

	assert.Contains(t, out, "namespace Shop.Controllers;")
	assert.Contains(t, out, "[ApiController]")
	assert.Contains(t, out, `[Route("api/[controller]")]`)
	assert.Contains(t, out, "public class UsersController : ControllerBase")
	assert.Contains(t, out, "private readonly IUserService _userService;")
	assert.Contains(t, out, "private readonly ILogger<UsersController> _logger;")

	assert.Contains(t, out, "public async Task<ActionResult<IEnumerable<UserResponseDto>>> GetAll([FromQuery] int page = 1, [FromQuery] int pageSize = 20)")
	assert.Contains(t, out, "public async Task<ActionResult<UserResponseDto>> GetById(Guid id)")
	assert.Contains(t, out, "public async Task<ActionResult<UserResponseDto>> Create([FromBody] UserCreateDto dto)")
	assert.Contains(t, out, "public async Task<ActionResult<UserResponseDto>> Update(Guid id, [FromBody] UserUpdateDto dto)")
	assert.Contains(t, out, "public async Task<IActionResult> Delete(Guid id)")
}

func TestControllersStatusHandling(t *testing.T) {
	out := mustGenerate(t, KindControllers, userModel())

	assert.Contains(t, out, "return BadRequest(ModelState);")
	assert.Contains(t, out, "return NotFound();")
	assert.Contains(t, out, "return NoContent();")
	assert.Contains(t, out, "return CreatedAtAction(nameof(GetById), new { id = created.Id }, created);")
	assert.Contains(t, out, `_logger.LogInformation("Creating User");`)
	assert.Contains(t, out, `_logger.LogInformation("Deleting User {Id}", id);`)
}

// An int primary key flows into every action signature.
func TestControllersIntKeyType(t *testing.T) {
	m := (&model.DataModel{
		ID:   "dm-cat",
		Name: "Catalog",
		Entities: []model.Entity{
			{
				ID:   "e-product",
				Name: "Product",
				Fields: []model.Field{
					{ID: "f-product-id", Name: "Id", Type: model.TypeInt, IsPrimaryKey: true, IsRequired: true, IsAutoGenerated: true},
				},
			},
		},
	}).Normalize()

	out := mustGenerate(t, KindControllers, m)
	assert.Contains(t, out, "public async Task<ActionResult<ProductResponseDto>> GetById(int id)")
	assert.Contains(t, out, "public async Task<IActionResult> Delete(int id)")
}
