package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/quarry/pkg/model"
)

func TestEntitiesSingleUser(t *testing.T) {
	out := mustGenerate(t, KindEntities, userModel())

	if !strings.HasPrefix(out, "// <auto-generated/>\n") {
		t.Fatalf("missing auto-generated banner:\n%s", out)
	}
	assert.Contains(t, out, "namespace Shop.Models;")
	assert.Contains(t, out, "public class User")
	assert.Contains(t, out, "[Key]\n    public Guid Id { get; set; }")
	assert.Contains(t, out, "[Required]\n    [MaxLength(255)]\n    public string Email { get; set; } = string.Empty;")
}

func TestEntitiesOneToManyNavigation(t *testing.T) {
	out := mustGenerate(t, KindEntities, shopModel())

	// FK-holding side: nullable FK property plus a scalar navigation.
	assert.Contains(t, out, "public Guid? UserId { get; set; }")
	assert.Contains(t, out, "public virtual User? User { get; set; }")

	// Target side: collection navigation back to the source.
	assert.Contains(t, out, "public virtual ICollection<Order> Orders { get; set; } = new List<Order>();")
}

func TestEntitiesManyToManyNavigations(t *testing.T) {
	out := mustGenerate(t, KindEntities, enrollmentModel())

	assert.Contains(t, out, "public virtual ICollection<Course> Courses { get; set; } = new List<Course>();")
	assert.Contains(t, out, "public virtual ICollection<Student> Students { get; set; } = new List<Student>();")

	// Many-to-many never synthesizes FK columns on either side.
	assert.NotContains(t, out, "CourseId")
	assert.NotContains(t, out, "StudentId")
}

func TestEntitiesDecimalAnnotation(t *testing.T) {
	out := mustGenerate(t, KindEntities, shopModel())
	assert.Contains(t, out, `[Column(TypeName = "decimal(10, 2)")]`)
	assert.Contains(t, out, "public decimal? Total { get; set; }")
}

// A declared field already named like the conventional FK is reused,
// not duplicated.
func TestEntitiesDeclaredFkFieldNotDuplicated(t *testing.T) {
	m := shopModel()
	order := m.EntityByID("e-order")
	require.NotNil(t, order)
	order.Fields = append(order.Fields, model.Field{
		ID: "f-order-userid", Name: "UserId", Type: model.TypeGuid,
	})

	out := mustGenerate(t, KindEntities, m)
	assert.Equal(t, 1, strings.Count(out, "UserId { get; set; }"))
}

func TestEntitiesSelfRelation(t *testing.T) {
	m := (&model.DataModel{
		ID:   "dm-tree",
		Name: "Org",
		Entities: []model.Entity{
			{
				ID:   "e-emp",
				Name: "Employee",
				Fields: []model.Field{
					{ID: "f-emp-id", Name: "Id", Type: model.TypeGuid, IsPrimaryKey: true, IsRequired: true, IsAutoGenerated: true},
				},
			},
		},
		Relations: []model.Relation{
			{ID: "r-manager", SourceEntityID: "e-emp", TargetEntityID: "e-emp", Cardinality: model.OneToMany},
		},
	}).Normalize()

	out := mustGenerate(t, KindEntities, m)
	assert.Contains(t, out, "public Guid? EmployeeId { get; set; }")
	assert.Contains(t, out, "public virtual Employee? Employee { get; set; }")
	assert.Contains(t, out, "public virtual ICollection<Employee> Employees { get; set; } = new List<Employee>();")
}
