package introspect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marshallshelly/quarry/pkg/model"
	"github.com/marshallshelly/quarry/pkg/naming"
)

// Introspector reverse-engineers a model document from a live
// PostgreSQL schema: tables become entities, foreign keys become
// relations, and standalone indexes become model-level indexes. Foreign
// key columns are folded into their relation rather than kept as
// declared fields, so regenerating DDL from the result does not emit
// the column twice.
type Introspector struct {
	pool *pgxpool.Pool
}

// NewIntrospector creates an introspector over a connection pool.
func NewIntrospector(pool *pgxpool.Pool) *Introspector {
	return &Introspector{pool: pool}
}

type uniqueConstraint struct {
	name    string
	columns []string
}

// Introspect builds a DataModel from every base table in the public
// schema.
func (in *Introspector) Introspect(ctx context.Context) (*model.DataModel, error) {
	name, err := in.databaseName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database name: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	m := &model.DataModel{
		ID:            uuid.NewString(),
		Name:          naming.PascalCase(name),
		Version:       "1.0.0",
		CreatedAt:     now,
		UpdatedAt:     now,
		TargetDialect: model.Postgres,
	}

	tables, err := in.tableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	entityByTable := make(map[string]*model.Entity, len(tables))
	multiUniques := make(map[string][]uniqueConstraint, len(tables))
	for _, table := range tables {
		e, uniques, err := in.introspectTable(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect table %s: %w", table, err)
		}
		entityByTable[table] = e
		multiUniques[table] = uniques
	}

	for _, table := range tables {
		rels, err := in.tableRelations(ctx, table, entityByTable)
		if err != nil {
			return nil, fmt.Errorf("failed to read foreign keys for %s: %w", table, err)
		}
		m.Relations = append(m.Relations, rels...)
	}

	for _, table := range tables {
		e := entityByTable[table]
		for _, uc := range multiUniques[table] {
			if idx, ok := resolveIndex(e, uc.name, uc.columns, true); ok {
				m.Indexes = append(m.Indexes, idx)
			}
		}
		idxs, err := in.tableIndexes(ctx, table, e)
		if err != nil {
			return nil, fmt.Errorf("failed to read indexes for %s: %w", table, err)
		}
		m.Indexes = append(m.Indexes, idxs...)
	}

	for _, table := range tables {
		m.Entities = append(m.Entities, *entityByTable[table])
	}
	return m.Normalize(), nil
}

func (in *Introspector) databaseName(ctx context.Context) (string, error) {
	var name string
	err := in.pool.QueryRow(ctx, "SELECT current_database()").Scan(&name)
	return name, err
}

func (in *Introspector) tableNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := in.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (in *Introspector) introspectTable(ctx context.Context, table string) (*model.Entity, []uniqueConstraint, error) {
	e := &model.Entity{
		ID:    uuid.NewString(),
		Name:  naming.SanitizeIdentifier(naming.PascalCase(naming.Singular(table))),
		Table: table,
	}

	fields, err := in.tableColumns(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	e.Fields = fields

	pkCols, err := in.primaryKeyColumns(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	for i := range e.Fields {
		if pkCols[e.Fields[i].Name] {
			e.Fields[i].IsPrimaryKey = true
			e.Fields[i].IsRequired = true
		}
	}

	uniques, err := in.uniqueConstraints(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	var multi []uniqueConstraint
	for _, uc := range uniques {
		if len(uc.columns) != 1 {
			multi = append(multi, uc)
			continue
		}
		if f := e.FieldByName(uc.columns[0]); f != nil && !f.IsPrimaryKey {
			f.IsUnique = true
		}
	}
	return e, multi, nil
}

func (in *Introspector) tableColumns(ctx context.Context, table string) ([]model.Field, error) {
	query := `
		SELECT
			column_name,
			data_type,
			udt_name,
			character_maximum_length,
			numeric_precision,
			numeric_scale,
			is_nullable,
			is_identity,
			column_default
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`

	rows, err := in.pool.Query(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []model.Field
	for rows.Next() {
		var name, dataType, udtName, isNullable, isIdentity string
		var maxLength, prec, scale *int
		var defaultVal *string
		if err := rows.Scan(&name, &dataType, &udtName, &maxLength, &prec, &scale, &isNullable, &isIdentity, &defaultVal); err != nil {
			return nil, err
		}

		f := model.Field{
			ID:         uuid.NewString(),
			Name:       name,
			Type:       fieldTypeForColumn(dataType, udtName),
			IsRequired: isNullable == "NO",
		}
		if f.Type == model.TypeString && maxLength != nil {
			f.MaxLength = maxLength
		}
		if f.Type == model.TypeDecimal {
			f.Precision = prec
			f.Scale = scale
		}
		if isIdentity == "YES" {
			f.IsAutoGenerated = true
		}
		if defaultVal != nil {
			if strings.Contains(*defaultVal, "nextval(") {
				f.IsAutoGenerated = true
			} else if token, ok := normalizeDefault(*defaultVal); ok {
				f.DefaultValue = &token
			}
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (in *Introspector) primaryKeyColumns(ctx context.Context, table string) (map[string]bool, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = 'public'
			AND tc.table_name = $1
			AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position
	`

	rows, err := in.pool.Query(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, err
		}
		cols[col] = true
	}
	return cols, rows.Err()
}

func (in *Introspector) uniqueConstraints(ctx context.Context, table string) ([]uniqueConstraint, error) {
	query := `
		SELECT
			tc.constraint_name,
			array_agg(kcu.column_name ORDER BY kcu.ordinal_position) as columns
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = 'public'
			AND tc.table_name = $1
			AND tc.constraint_type = 'UNIQUE'
		GROUP BY tc.constraint_name
		ORDER BY tc.constraint_name
	`

	rows, err := in.pool.Query(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uniques []uniqueConstraint
	for rows.Next() {
		var uc uniqueConstraint
		if err := rows.Scan(&uc.name, &uc.columns); err != nil {
			return nil, err
		}
		uniques = append(uniques, uc)
	}
	return uniques, rows.Err()
}

// tableRelations converts single-column foreign keys into relations,
// removing the FK column from the source entity's declared fields; the
// generators re-synthesize it by convention. Composite foreign keys are
// left in place as plain columns.
func (in *Introspector) tableRelations(ctx context.Context, table string, entityByTable map[string]*model.Entity) ([]model.Relation, error) {
	query := `
		SELECT
			tc.constraint_name,
			array_agg(DISTINCT kcu.column_name) as columns,
			ccu.table_name as foreign_table,
			array_agg(DISTINCT ccu.column_name) as foreign_columns,
			rc.update_rule,
			rc.delete_rule
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
		JOIN information_schema.referential_constraints rc
			ON rc.constraint_name = tc.constraint_name
		WHERE tc.table_schema = 'public'
			AND tc.table_name = $1
			AND tc.constraint_type = 'FOREIGN KEY'
		GROUP BY tc.constraint_name, ccu.table_name, rc.update_rule, rc.delete_rule
		ORDER BY tc.constraint_name
	`

	rows, err := in.pool.Query(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	src := entityByTable[table]
	var relations []model.Relation
	for rows.Next() {
		var constraint, foreignTable, updateRule, deleteRule string
		var columns, foreignColumns []string
		if err := rows.Scan(&constraint, &columns, &foreignTable, &foreignColumns, &updateRule, &deleteRule); err != nil {
			return nil, err
		}

		target := entityByTable[foreignTable]
		if target == nil || len(columns) != 1 || len(foreignColumns) != 1 {
			continue
		}
		col := src.FieldByName(columns[0])
		if col == nil {
			continue
		}

		cardinality := model.OneToMany
		if col.IsUnique {
			cardinality = model.OneToOne
		}

		r := model.Relation{
			ID:             uuid.NewString(),
			Name:           constraint,
			SourceEntityID: src.ID,
			TargetEntityID: target.ID,
			Cardinality:    cardinality,
			FKFieldName:    columns[0],
			OnDelete:       parseAction(deleteRule),
			OnUpdate:       parseAction(updateRule),
		}
		if ref := target.FieldByName(foreignColumns[0]); ref != nil {
			r.TargetFieldID = ref.ID
		}
		relations = append(relations, r)
		removeField(src, columns[0])
	}
	return relations, rows.Err()
}

// tableIndexes reads standalone indexes; constraint-backed indexes are
// represented through their constraints instead.
func (in *Introspector) tableIndexes(ctx context.Context, table string, e *model.Entity) ([]model.Index, error) {
	query := `
		SELECT
			i.relname as index_name,
			array_agg(a.attname ORDER BY x.ordinality) as columns,
			ix.indisunique as is_unique
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		CROSS JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS x(attnum, ordinality)
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = x.attnum
		LEFT JOIN pg_constraint c ON c.conindid = ix.indexrelid
		WHERE t.relname = $1
			AND t.relnamespace = (SELECT oid FROM pg_namespace WHERE nspname = 'public')
			AND NOT ix.indisprimary
			AND c.conindid IS NULL
		GROUP BY i.relname, ix.indisunique
		ORDER BY i.relname
	`

	rows, err := in.pool.Query(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []model.Index
	for rows.Next() {
		var name string
		var columns []string
		var unique bool
		if err := rows.Scan(&name, &columns, &unique); err != nil {
			return nil, err
		}
		if idx, ok := resolveIndex(e, name, columns, unique); ok {
			indexes = append(indexes, idx)
		}
	}
	return indexes, rows.Err()
}

// resolveIndex maps index columns onto field ids. Indexes touching a
// column that is not a declared field (an expression, or a folded FK
// column) are skipped.
func resolveIndex(e *model.Entity, name string, columns []string, unique bool) (model.Index, bool) {
	ids := make([]string, 0, len(columns))
	for _, col := range columns {
		f := e.FieldByName(col)
		if f == nil {
			return model.Index{}, false
		}
		ids = append(ids, f.ID)
	}
	if len(ids) == 0 {
		return model.Index{}, false
	}
	return model.Index{
		ID:       uuid.NewString(),
		Name:     name,
		EntityID: e.ID,
		FieldIDs: ids,
		IsUnique: unique,
	}, true
}

func removeField(e *model.Entity, name string) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			e.Fields = append(e.Fields[:i], e.Fields[i+1:]...)
			return
		}
	}
}

// fieldTypeForColumn maps a PostgreSQL column type onto the abstract
// field type enum. Unknown types degrade to string rather than failing
// the whole introspection.
func fieldTypeForColumn(dataType, udtName string) model.FieldType {
	switch dataType {
	case "character varying", "character", "text":
		return model.TypeString
	case "smallint", "integer":
		return model.TypeInt
	case "bigint":
		return model.TypeLong
	case "numeric", "decimal":
		return model.TypeDecimal
	case "double precision":
		return model.TypeDouble
	case "real":
		return model.TypeFloat
	case "boolean":
		return model.TypeBool
	case "timestamp without time zone", "timestamp with time zone":
		return model.TypeDateTime
	case "date":
		return model.TypeDateOnly
	case "time without time zone", "time with time zone":
		return model.TypeTimeOnly
	case "uuid":
		return model.TypeGuid
	case "bytea":
		return model.TypeBytes
	case "json", "jsonb":
		return model.TypeJSON
	case "USER-DEFINED":
		if udtName == "uuid" {
			return model.TypeGuid
		}
		return model.TypeString
	default:
		return model.TypeString
	}
}

// normalizeDefault turns a PostgreSQL column default expression into
// the model's default-value token: generator functions collapse to the
// tokens the DDL renderer understands, literals lose their casts and
// quoting, and anything unrecognizable is carried verbatim.
func normalizeDefault(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "gen_random_uuid") || strings.Contains(lower, "uuid_generate"):
		return "newguid", true
	case strings.Contains(lower, "timezone('utc'") || strings.Contains(lower, "at time zone 'utc'"):
		return "utcnow", true
	case strings.Contains(lower, "now()") || strings.Contains(lower, "current_timestamp"):
		return "now", true
	}

	if idx := strings.Index(trimmed, "::"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") {
		trimmed = strings.ReplaceAll(trimmed[1:len(trimmed)-1], "''", "'")
	}
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

func parseAction(rule string) model.ReferentialAction {
	switch strings.ToUpper(rule) {
	case "CASCADE":
		return model.Cascade
	case "SET NULL":
		return model.SetNull
	case "RESTRICT":
		return model.Restrict
	default:
		return model.NoAction
	}
}
