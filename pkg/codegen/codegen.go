// Package codegen implements the artifact generators: C# entity classes,
// EF Core mapping configuration, DTOs, controllers, repositories,
// services, SQL DDL for four dialects, and an OpenAPI document. Every
// generator is a pure function of the model snapshot it receives; the
// registry only routes artifact kind strings to generators and holds no
// model state.
package codegen

import (
	"fmt"
	"sync"

	"github.com/marshallshelly/quarry/pkg/model"
)

// Kind identifies one generated artifact.
type Kind string

const (
	KindEntities     Kind = "entity-classes"
	KindContext      Kind = "context-configuration"
	KindDTOs         Kind = "dtos"
	KindControllers  Kind = "controllers"
	KindRepositories Kind = "repositories"
	KindServices     Kind = "services"
	KindSQLServer    Kind = "sql-sqlserver"
	KindSQLPostgres  Kind = "sql-postgres"
	KindSQLMySQL     Kind = "sql-mysql"
	KindSQLSQLite    Kind = "sql-sqlite"
	KindOpenAPI      Kind = "openapi"
)

// AllKinds returns every artifact kind in canonical order.
func AllKinds() []Kind {
	return []Kind{
		KindEntities,
		KindContext,
		KindDTOs,
		KindControllers,
		KindRepositories,
		KindServices,
		KindSQLServer,
		KindSQLPostgres,
		KindSQLMySQL,
		KindSQLSQLite,
		KindOpenAPI,
	}
}

// Description returns a short human-readable label for the kind.
func (k Kind) Description() string {
	switch k {
	case KindEntities:
		return "C# entity classes"
	case KindContext:
		return "EF Core DbContext configuration"
	case KindDTOs:
		return "Create/Update/Response DTOs"
	case KindControllers:
		return "ASP.NET Core API controllers"
	case KindRepositories:
		return "Repository interfaces and implementations"
	case KindServices:
		return "Service layer"
	case KindSQLServer:
		return "SQL Server DDL script"
	case KindSQLPostgres:
		return "PostgreSQL DDL script"
	case KindSQLMySQL:
		return "MySQL DDL script"
	case KindSQLSQLite:
		return "SQLite DDL script"
	case KindOpenAPI:
		return "OpenAPI 3.0.3 document"
	default:
		return string(k)
	}
}

// FileName returns the conventional output file name for the kind.
func (k Kind) FileName() string {
	switch k {
	case KindEntities:
		return "Entities.cs"
	case KindContext:
		return "DbContext.cs"
	case KindDTOs:
		return "Dtos.cs"
	case KindControllers:
		return "Controllers.cs"
	case KindRepositories:
		return "Repositories.cs"
	case KindServices:
		return "Services.cs"
	case KindSQLServer:
		return "schema.sqlserver.sql"
	case KindSQLPostgres:
		return "schema.postgres.sql"
	case KindSQLMySQL:
		return "schema.mysql.sql"
	case KindSQLSQLite:
		return "schema.sqlite.sql"
	case KindOpenAPI:
		return "openapi.json"
	default:
		return string(k)
	}
}

// Options carries the per-call generation switches. IncludeDrops adds
// guarded DROP TABLE statements ahead of the CREATE statements in the
// SQL artifacts.
type Options struct {
	IncludeDrops bool
}

// GeneratorFunc renders one artifact from a model snapshot.
type GeneratorFunc func(m *model.DataModel, opts Options) (string, error)

// Registry is a thread-safe dispatch table from artifact kinds to
// generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[Kind]GeneratorFunc
}

// NewRegistry returns a registry with every built-in generator
// registered.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[Kind]GeneratorFunc)}
	r.Register(KindEntities, func(m *model.DataModel, _ Options) (string, error) {
		return Entities(m)
	})
	r.Register(KindContext, func(m *model.DataModel, _ Options) (string, error) {
		return Context(m)
	})
	r.Register(KindDTOs, func(m *model.DataModel, _ Options) (string, error) {
		return DTOs(m)
	})
	r.Register(KindControllers, func(m *model.DataModel, _ Options) (string, error) {
		return Controllers(m)
	})
	r.Register(KindRepositories, func(m *model.DataModel, _ Options) (string, error) {
		return Repositories(m)
	})
	r.Register(KindServices, func(m *model.DataModel, _ Options) (string, error) {
		return Services(m)
	})
	r.Register(KindSQLServer, func(m *model.DataModel, opts Options) (string, error) {
		return SQL(m, model.SQLServer, opts.IncludeDrops)
	})
	r.Register(KindSQLPostgres, func(m *model.DataModel, opts Options) (string, error) {
		return SQL(m, model.Postgres, opts.IncludeDrops)
	})
	r.Register(KindSQLMySQL, func(m *model.DataModel, opts Options) (string, error) {
		return SQL(m, model.MySQL, opts.IncludeDrops)
	})
	r.Register(KindSQLSQLite, func(m *model.DataModel, opts Options) (string, error) {
		return SQL(m, model.SQLite, opts.IncludeDrops)
	})
	r.Register(KindOpenAPI, func(m *model.DataModel, _ Options) (string, error) {
		return OpenAPI(m)
	})
	return r
}

// Register adds or replaces the generator for a kind.
func (r *Registry) Register(kind Kind, fn GeneratorFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[kind] = fn
}

// Has checks whether a generator is registered for the kind.
func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.generators[kind]
	return ok
}

// Kinds returns the registered kinds in canonical order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.generators))
	for _, k := range AllKinds() {
		if _, ok := r.generators[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Generate renders one artifact kind from the model.
func (r *Registry) Generate(kind Kind, m *model.DataModel, opts Options) (string, error) {
	r.mu.RLock()
	fn, ok := r.generators[kind]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	out, err := fn(m, opts)
	if err != nil {
		return "", &GenerateError{Kind: kind, Err: err}
	}
	return out, nil
}

// GenerateAll renders every registered artifact kind.
func (r *Registry) GenerateAll(m *model.DataModel, opts Options) (map[Kind]string, error) {
	out := make(map[Kind]string, len(r.generators))
	for _, kind := range r.Kinds() {
		text, err := r.Generate(kind, m, opts)
		if err != nil {
			return nil, err
		}
		out[kind] = text
	}
	return out, nil
}

// globalRegistry backs the package-level dispatch functions. It is
// populated once at init and never mutated afterwards.
var globalRegistry = NewRegistry()

// Generate renders one artifact kind using the built-in generators.
func Generate(kind Kind, m *model.DataModel, opts Options) (string, error) {
	return globalRegistry.Generate(kind, m, opts)
}

// GenerateAll renders every built-in artifact kind.
func GenerateAll(m *model.DataModel, opts Options) (map[Kind]string, error) {
	return globalRegistry.GenerateAll(m, opts)
}

// Kinds returns the built-in artifact kinds in canonical order.
func Kinds() []Kind {
	return globalRegistry.Kinds()
}
