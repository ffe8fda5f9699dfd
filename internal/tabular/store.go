// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular answers questions against the structured store: a SQLite
// database built from ingested CSV files, queried through generated SQL.
package tabular

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Store manages the structured-data SQLite database.
type Store struct {
	db        *sql.DB
	hintLimit int
}

// Open opens or creates the structured store at cfg.DBPath.
func Open(cfg types.TabularConfig) (*Store, error) {
	dir := filepath.Dir(cfg.DBPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	hintLimit := cfg.ValueHintLimit
	if hintLimit <= 0 {
		hintLimit = 20
	}

	return &Store{db: db, hintLimit: hintLimit}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// IngestSummary holds counts from a CSV ingestion run.
type IngestSummary struct {
	Loaded int
	Failed int
}

// IngestCSV loads every .csv file in dataDir as a table named after the file.
// Existing tables of the same name are replaced. Column affinities are
// inferred from the data: INTEGER, REAL, or TEXT.
func (s *Store) IngestCSV(ctx context.Context, dataDir string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading data directory %s: %w", dataDir, err)
	}

	var summary IngestSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}

		table := tableName(entry.Name())
		path := filepath.Join(dataDir, entry.Name())

		n, err := s.loadCSV(ctx, table, path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "loaded  %s -> %s (%d rows)\n", entry.Name(), table, n)
		summary.Loaded++
	}

	return summary, nil
}

// tableName derives a SQL identifier from a CSV filename: lowercase, with
// every non-alphanumeric run collapsed to a single underscore.
func tableName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

func (s *Store) loadCSV(ctx context.Context, table, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("empty CSV file")
	}

	header := records[0]
	rows := records[1:]
	affinities := inferAffinities(header, rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", table)); err != nil {
		return 0, fmt.Errorf("dropping existing table: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = fmt.Sprintf("%q %s", h, affinities[i])
	}
	ddl := fmt.Sprintf("CREATE TABLE %q (%s)", table, strings.Join(cols, ", "))
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(header)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %q VALUES (%s)", table, placeholders))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range rows {
		if len(rec) != len(header) {
			return 0, fmt.Errorf("row %d has %d fields, want %d", i+2, len(rec), len(header))
		}
		vals := make([]any, len(rec))
		for j, v := range rec {
			vals[j] = convertValue(v, affinities[j])
		}
		if _, err := stmt.ExecContext(ctx, vals...); err != nil {
			return 0, fmt.Errorf("inserting row %d: %w", i+2, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(rows), nil
}

// inferAffinities picks INTEGER, REAL, or TEXT for each column by scanning
// the data. Blank cells are ignored; a column with no non-blank cells is TEXT.
func inferAffinities(header []string, rows [][]string) []string {
	affinities := make([]string, len(header))
	for col := range header {
		allInt, allReal, seen := true, true, false
		for _, rec := range rows {
			if col >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[col])
			if v == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allReal = false
			}
			if !allInt && !allReal {
				break
			}
		}
		switch {
		case !seen:
			affinities[col] = "TEXT"
		case allInt:
			affinities[col] = "INTEGER"
		case allReal:
			affinities[col] = "REAL"
		default:
			affinities[col] = "TEXT"
		}
	}
	return affinities
}

// convertValue maps a CSV cell to the inferred affinity; blank cells become NULL.
func convertValue(v, affinity string) any {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	switch affinity {
	case "INTEGER":
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case "REAL":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}

// Schema returns the CREATE TABLE statements of all user tables, for
// inclusion in model prompts.
func (s *Store) Schema(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return "", fmt.Errorf("querying schema: %w", err)
	}
	defer rows.Close()

	var ddls []string
	for rows.Next() {
		var ddl sql.NullString
		if err := rows.Scan(&ddl); err != nil {
			return "", fmt.Errorf("scanning schema: %w", err)
		}
		if ddl.Valid {
			ddls = append(ddls, ddl.String+";")
		}
	}
	return strings.Join(ddls, "\n"), rows.Err()
}

// ValueHints summarizes the distinct values of low-cardinality text columns,
// one "- table.column: v1, v2, ..." line per column. These hints keep
// generated WHERE clauses aligned with the actual categorical values.
func (s *Store) ValueHints(ctx context.Context) (string, error) {
	tables, err := s.tableNames(ctx)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, table := range tables {
		cols, err := s.textColumns(ctx, table)
		if err != nil {
			return "", err
		}
		for _, col := range cols {
			values, err := s.distinctValues(ctx, table, col)
			if err != nil || values == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s.%s: %s", table, col, strings.Join(values, ", ")))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Store) tableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) textColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		if strings.EqualFold(ctype, "TEXT") {
			cols = append(cols, name)
		}
	}
	return cols, rows.Err()
}

// distinctValues returns the sorted distinct values of a column, or nil when
// the column exceeds the hint limit.
func (s *Store) distinctValues(ctx context.Context, table, col string) ([]string, error) {
	var count int
	countQ := fmt.Sprintf("SELECT COUNT(DISTINCT %q) FROM %q", col, table)
	if err := s.db.QueryRowContext(ctx, countQ).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 || count > s.hintLimit {
		return nil, nil
	}

	q := fmt.Sprintf("SELECT DISTINCT %q FROM %q WHERE %q IS NOT NULL ORDER BY %q", col, table, col, col)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
