// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docs answers questions against the unstructured corpus: documents
// are chunked into passages, indexed with SQLite FTS5, and retrieved passages
// ground a model-generated answer.
package docs

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Store manages the passage index SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the passage index at cfg.IndexPath and ensures
// the schema exists.
func OpenStore(cfg types.DocumentsConfig) (*Store, error) {
	dir := filepath.Dir(cfg.IndexPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.IndexPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			ingested_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS passages (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			document_id TEXT NOT NULL REFERENCES documents(id),
			section TEXT,
			content TEXT NOT NULL
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS passages_fts USING fts5(
			content, content=passages, content_rowid=rowid
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing %.40s: %w", stmt, err)
		}
	}
	return nil
}

// Passage is one retrievable chunk of a document.
type Passage struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Section  string `json:"section,omitempty"`
	Content  string `json:"content"`
}

// IngestSummary holds counts from a document ingestion run.
type IngestSummary struct {
	Indexed int
	Failed  int
}

// IngestDir indexes every Markdown or plain-text file in dir. A document is
// keyed by filename; re-ingesting replaces its passages.
func (s *Store) IngestDir(ctx context.Context, dir string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading documents directory %s: %w", dir, err)
	}

	var summary IngestSummary
	for _, entry := range entries {
		if entry.IsDir() || !isDocFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		n, err := s.ingestFile(ctx, entry.Name(), path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "indexed %s (%d passages)\n", entry.Name(), n)
		summary.Indexed++
	}
	return summary, nil
}

func isDocFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".txt":
		return true
	}
	return false
}

func (s *Store) ingestFile(ctx context.Context, docID, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	chunks := chunkDocument(string(content))
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no indexable content")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace any previous version of this document.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM passages_fts WHERE rowid IN (SELECT rowid FROM passages WHERE document_id = ?)`, docID); err != nil {
		return 0, fmt.Errorf("clearing index: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM passages WHERE document_id = ?`, docID); err != nil {
		return 0, fmt.Errorf("clearing passages: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, path, ingested_at) VALUES (?, ?, ?)`,
		docID, path, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("recording document: %w", err)
	}

	for _, c := range chunks {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO passages (id, document_id, section, content) VALUES (?, ?, ?, ?)`,
			passageID(docID, c.section, c.body), docID, c.section, c.body)
		if err != nil {
			return 0, fmt.Errorf("inserting passage: %w", err)
		}
		rowid, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO passages_fts (rowid, content) VALUES (?, ?)`, rowid, c.body); err != nil {
			return 0, fmt.Errorf("indexing passage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(chunks), nil
}

// passageID generates a deterministic ID from document, section, and content:
// the first 12 hex characters of their SHA-256.
func passageID(docID, section, content string) string {
	h := sha256.New()
	h.Write([]byte(docID))
	h.Write([]byte(section))
	h.Write([]byte(content))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Search returns up to limit passages ranked by FTS5 relevance.
func (s *Store) Search(ctx context.Context, question string, limit int) ([]Passage, error) {
	if limit <= 0 {
		limit = 8
	}

	match := ftsQuery(question)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.document_id, p.section, p.content
		FROM passages_fts
		JOIN passages p ON p.rowid = passages_fts.rowid
		WHERE passages_fts MATCH ?
		ORDER BY passages_fts.rank
		LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var passages []Passage
	for rows.Next() {
		var (
			p       Passage
			section sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Document, &section, &p.Content); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		p.Section = section.String
		passages = append(passages, p)
	}
	return passages, rows.Err()
}

// ftsQuery turns free-form question text into an FTS5 OR-query over its
// word tokens. Raw questions contain punctuation FTS5 would reject.
func ftsQuery(question string) string {
	fields := strings.FieldsFunc(question, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})

	var terms []string
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		terms = append(terms, fmt.Sprintf("%q", strings.ToLower(f)))
	}
	return strings.Join(terms, " OR ")
}
