// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// SQLGenerator abstracts the model that translates a question into SQL so
// tests can supply a mock. The returned text may hold several SELECT
// statements separated by semicolons.
type SQLGenerator interface {
	Generate(ctx context.Context, question string) (string, error)
}

// Answerer answers questions by generating SQL and executing it against the
// store. Only SELECT statements are ever executed; anything else from the
// generator is rejected before touching the database.
type Answerer struct {
	store *Store
	gen   SQLGenerator
	log   *zap.Logger
}

// NewAnswerer returns an Answerer over the given store and generator.
func NewAnswerer(store *Store, gen SQLGenerator, log *zap.Logger) *Answerer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Answerer{store: store, gen: gen, log: log}
}

// Query generates SQL for the question and returns the combined result rows
// in execution order.
func (a *Answerer) Query(ctx context.Context, question string) (*types.Table, error) {
	query, err := a.gen.Generate(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("generating SQL: %w", err)
	}

	a.log.Debug("generated SQL", zap.String("query", query))

	table, err := a.store.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// Execute runs one or more semicolon-separated SELECT statements and merges
// their rows into a single Table. Columns keep the first statement's order;
// columns introduced by later statements are appended. Row order within each
// statement is preserved.
func (s *Store) Execute(ctx context.Context, query string) (*types.Table, error) {
	statements := splitStatements(query)
	if len(statements) == 0 {
		return nil, fmt.Errorf("no SQL statements to execute")
	}
	for _, stmt := range statements {
		if !isSelect(stmt) {
			return nil, fmt.Errorf("refusing non-SELECT statement: %.60s", stmt)
		}
	}

	result := &types.Table{}
	seen := make(map[string]bool)

	for _, stmt := range statements {
		if err := s.appendStatement(ctx, result, seen, stmt); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Store) appendStatement(ctx context.Context, result *types.Table, seen map[string]bool, stmt string) error {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("reading columns: %w", err)
	}
	for _, c := range cols {
		if !seen[c] {
			seen[c] = true
			result.Columns = append(result.Columns, c)
		}
	}

	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = vals[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return rows.Err()
}

// splitStatements breaks a SQL string on semicolons and drops blanks.
// Generated queries never contain string literals with semicolons, so a
// plain split is sufficient here.
func splitStatements(query string) []string {
	var out []string
	for _, part := range strings.Split(query, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// isSelect reports whether the statement is a read-only query.
func isSelect(stmt string) bool {
	upper := strings.ToUpper(strings.TrimSpace(stmt))
	return strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "WITH")
}
