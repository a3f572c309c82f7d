package introspect

import (
	"context"
	"fmt"
	"strings"
)

// SplitStatements breaks a generated DDL script into executable
// statements: comment lines are dropped and statements end at a line
// whose last token is a semicolon. This matches the shape the SQL
// generators emit; it is not a general SQL parser.
func SplitStatements(script string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			statements = append(statements, strings.TrimSuffix(stmt, ";"))
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}

// Apply runs every statement of a generated script inside a single
// transaction; the schema either fully applies or not at all. Returns
// the number of statements executed.
func Apply(ctx context.Context, db *DB, script string) (int, error) {
	statements := SplitStatements(script)
	if len(statements) == 0 {
		return 0, nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return i, fmt.Errorf("statement %d failed: %w\n%s", i+1, err, stmt)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return len(statements), fmt.Errorf("failed to commit: %w", err)
	}
	return len(statements), nil
}
