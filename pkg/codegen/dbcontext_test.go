package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/quarry/pkg/model"
)

func TestContextDbSetsAndMapping(t *testing.T) {
	out := mustGenerate(t, KindContext, shopModel())

	assert.Contains(t, out, "public class ShopDbContext : DbContext")
	assert.Contains(t, out, "public ShopDbContext(DbContextOptions<ShopDbContext> options) : base(options)")
	assert.Contains(t, out, "public DbSet<User> Users { get; set; }")
	assert.Contains(t, out, "public DbSet<Order> Orders { get; set; }")
	assert.Contains(t, out, `entity.ToTable("Users");`)
	assert.Contains(t, out, "entity.HasKey(e => e.Id);")
	assert.Contains(t, out, "base.OnModelCreating(modelBuilder);")
}

func TestContextUniqueFieldIndex(t *testing.T) {
	out := mustGenerate(t, KindContext, userModel())
	assert.Contains(t, out, "entity.HasIndex(e => e.Email).IsUnique();")
}

func TestContextOneToManyRelation(t *testing.T) {
	out := mustGenerate(t, KindContext, shopModel())

	assert.Contains(t, out, "entity.HasOne(e => e.User)")
	assert.Contains(t, out, ".WithMany(e => e.Orders)")
	assert.Contains(t, out, ".HasForeignKey(e => e.UserId)")
	assert.Contains(t, out, ".OnDelete(DeleteBehavior.Cascade);")
}

func TestContextOneToOneRelation(t *testing.T) {
	m := shopModel()
	m.Relations[0].Cardinality = model.OneToOne
	m.Relations[0].OnDelete = model.Restrict

	out := mustGenerate(t, KindContext, m)
	assert.Contains(t, out, ".WithOne(e => e.Order)")
	assert.Contains(t, out, ".HasForeignKey<Order>(e => e.UserId)")
	assert.Contains(t, out, ".OnDelete(DeleteBehavior.Restrict);")
}

func TestContextManyToManyJoinTable(t *testing.T) {
	out := mustGenerate(t, KindContext, enrollmentModel())

	assert.Contains(t, out, "entity.HasMany(e => e.Courses)")
	assert.Contains(t, out, ".WithMany(e => e.Students)")
	assert.Contains(t, out, `.UsingEntity("StudentCourse");`)
}

func TestContextDecimalPrecision(t *testing.T) {
	out := mustGenerate(t, KindContext, shopModel())
	assert.Contains(t, out, "entity.Property(e => e.Total).HasPrecision(10, 2);")

	// No HasPrecision call when the model leaves precision implicit.
	m := shopModel()
	order := m.EntityByID("e-order")
	require.NotNil(t, order)
	order.Fields[1].Precision = nil
	order.Fields[1].Scale = nil
	out = mustGenerate(t, KindContext, m)
	assert.NotContains(t, out, "HasPrecision")
}

func TestContextJsonColumnType(t *testing.T) {
	m := userModel()
	m.TargetDialect = model.Postgres
	user := m.EntityByID("e-user")
	require.NotNil(t, user)
	user.Fields = append(user.Fields, model.Field{
		ID: "f-user-prefs", Name: "Preferences", Type: model.TypeJSON,
	})

	out := mustGenerate(t, KindContext, m)
	assert.Contains(t, out, `entity.Property(e => e.Preferences).HasColumnType("jsonb");`)
}

func TestContextSchemaQualifiedTable(t *testing.T) {
	m := userModel()
	m.Entities[0].Schema = "auth"

	out := mustGenerate(t, KindContext, m)
	assert.Contains(t, out, `entity.ToTable("Users", "auth");`)
}

func TestContextModelLevelIndexes(t *testing.T) {
	m := shopModel()
	m.Indexes = append(m.Indexes, model.Index{
		ID: "ix-composite", Name: "IX_Users_Email_Id", EntityID: "e-user",
		FieldIDs: []string{"f-user-email", "f-user-id"}, IsUnique: true, IsClustered: true,
	})

	out := mustGenerate(t, KindContext, m)
	assert.Contains(t, out, "modelBuilder.Entity<User>()")
	assert.Contains(t, out, ".HasIndex(e => e.Email)")
	assert.Contains(t, out, `.HasIndex(e => new { e.Email, e.Id }, "IX_Users_Email_Id")`)
	assert.Contains(t, out, ".IsUnique()")
	assert.Contains(t, out, ".IsClustered()")
}
