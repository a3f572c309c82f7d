package codegen

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/quarry/pkg/model"
)

// Repositories renders a generic EF Core repository pair plus one typed
// repository per entity. The generic base covers lookups, paging,
// predicate queries, and mutations; the per-entity repositories pin the
// key type and leave an eager-loading hook for relation-aware reads.
func Repositories(m *model.DataModel) (string, error) {
	var b strings.Builder
	b.WriteString(banner)
	if len(m.Entities) == 0 {
		b.WriteString("\n" + emptyNotice)
		return b.String(), nil
	}

	ns := baseNamespace(m)
	ctx := contextClass(m)
	b.WriteString("using System;\n")
	b.WriteString("using System.Collections.Generic;\n")
	b.WriteString("using System.Linq;\n")
	b.WriteString("using System.Linq.Expressions;\n")
	b.WriteString("using System.Threading;\n")
	b.WriteString("using System.Threading.Tasks;\n")
	b.WriteString("using Microsoft.EntityFrameworkCore;\n")
	fmt.Fprintf(&b, "using %s.Models;\n", ns)
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s.Data;\n", ns)

	writeRepositoryInterface(&b)
	writeRepositoryBase(&b, ctx)

	for i := range m.Entities {
		if err := writeEntityRepository(&b, &m.Entities[i], ctx); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeRepositoryInterface(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString("public interface IRepository<T> where T : class\n")
	b.WriteString("{\n")
	b.WriteString("    Task<T?> GetByIdAsync<TKey>(TKey id, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<IEnumerable<T>> GetAllAsync(CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<IEnumerable<T>> GetPagedAsync(int page, int pageSize, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<IEnumerable<T>> FindAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<T?> FirstOrDefaultAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<bool> AnyAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<int> CountAsync(CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<int> CountAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<T> AddAsync(T entity, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task AddRangeAsync(IEnumerable<T> entities, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task<T> UpdateAsync(T entity, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task DeleteAsync(T entity, CancellationToken cancellationToken = default);\n")
	b.WriteString("    Task DeleteRangeAsync(IEnumerable<T> entities, CancellationToken cancellationToken = default);\n")
	b.WriteString("}\n")
}

func writeRepositoryBase(b *strings.Builder, ctx string) {
	b.WriteString("\n")
	b.WriteString("public class Repository<T> : IRepository<T> where T : class\n")
	b.WriteString("{\n")
	fmt.Fprintf(b, "    protected readonly %s _context;\n", ctx)
	b.WriteString("    protected readonly DbSet<T> _dbSet;\n")
	b.WriteString("\n")
	fmt.Fprintf(b, "    public Repository(%s context)\n", ctx)
	b.WriteString("    {\n")
	b.WriteString("        _context = context;\n")
	b.WriteString("        _dbSet = context.Set<T>();\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<T?> GetByIdAsync<TKey>(TKey id, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.FindAsync(new object?[] { id }, cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<IEnumerable<T>> GetAllAsync(CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.ToListAsync(cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<IEnumerable<T>> GetPagedAsync(int page, int pageSize, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.Skip((page - 1) * pageSize).Take(pageSize).ToListAsync(cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<IEnumerable<T>> FindAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.Where(predicate).ToListAsync(cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<T?> FirstOrDefaultAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.FirstOrDefaultAsync(predicate, cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<bool> AnyAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.AnyAsync(predicate, cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<int> CountAsync(CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.CountAsync(cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<int> CountAsync(Expression<Func<T, bool>> predicate, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        return await _dbSet.CountAsync(predicate, cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<T> AddAsync(T entity, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        await _dbSet.AddAsync(entity, cancellationToken);\n")
	b.WriteString("        await _context.SaveChangesAsync(cancellationToken);\n")
	b.WriteString("        return entity;\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task AddRangeAsync(IEnumerable<T> entities, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        await _dbSet.AddRangeAsync(entities, cancellationToken);\n")
	b.WriteString("        await _context.SaveChangesAsync(cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task<T> UpdateAsync(T entity, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        _dbSet.Update(entity);\n")
	b.WriteString("        await _context.SaveChangesAsync(cancellationToken);\n")
	b.WriteString("        return entity;\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task DeleteAsync(T entity, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        _dbSet.Remove(entity);\n")
	b.WriteString("        await _context.SaveChangesAsync(cancellationToken);\n")
	b.WriteString("    }\n")

	b.WriteString("\n")
	b.WriteString("    public virtual async Task DeleteRangeAsync(IEnumerable<T> entities, CancellationToken cancellationToken = default)\n")
	b.WriteString("    {\n")
	b.WriteString("        _dbSet.RemoveRange(entities);\n")
	b.WriteString("        await _context.SaveChangesAsync(cancellationToken);\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}

func writeEntityRepository(b *strings.Builder, e *model.Entity, ctx string) error {
	class := e.ClassName()
	kt, err := keyType(e)
	if err != nil {
		return err
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "public interface I%sRepository : IRepository<%s>\n", class, class)
	b.WriteString("{\n")
	fmt.Fprintf(b, "    Task<%s?> GetByIdAsync(%s id, CancellationToken cancellationToken = default);\n", class, kt)
	fmt.Fprintf(b, "    Task<%s?> Get%sWithRelationsAsync(%s id, CancellationToken cancellationToken = default);\n", class, class, kt)
	b.WriteString("}\n")

	b.WriteString("\n")
	fmt.Fprintf(b, "public class %sRepository : Repository<%s>, I%sRepository\n", class, class, class)
	b.WriteString("{\n")
	fmt.Fprintf(b, "    public %sRepository(%s context) : base(context)\n", class, ctx)
	b.WriteString("    {\n")
	b.WriteString("    }\n")
	b.WriteString("\n")
	fmt.Fprintf(b, "    public async Task<%s?> GetByIdAsync(%s id, CancellationToken cancellationToken = default)\n", class, kt)
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        return await GetByIdAsync<%s>(id, cancellationToken);\n", kt)
	b.WriteString("    }\n")
	b.WriteString("\n")
	fmt.Fprintf(b, "    public async Task<%s?> Get%sWithRelationsAsync(%s id, CancellationToken cancellationToken = default)\n", class, class, kt)
	b.WriteString("    {\n")
	b.WriteString("        // TODO: Include related entities for eager loading before shipping this query.\n")
	b.WriteString("        return await GetByIdAsync(id, cancellationToken);\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return nil
}
