// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(types.TabularConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const studentCSV = `Gender,LunchType,ReadingScore
female,standard,72
male,free/reduced,90
female,standard,95
`

func TestIngestCSV(t *testing.T) {
	store := newTestStore(t)
	dataDir := t.TempDir()
	writeCSV(t, dataDir, "Student Info-Basic.csv", studentCSV)
	writeCSV(t, dataDir, "notes.txt", "not a csv")

	summary, err := store.IngestCSV(context.Background(), dataDir, io.Discard)
	if err != nil {
		t.Fatalf("IngestCSV: %v", err)
	}
	if summary.Loaded != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 1 loaded, 0 failed", summary)
	}

	table, err := store.Execute(context.Background(), "SELECT COUNT(*) AS n FROM student_info_basic")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := table.Rows[0]["n"]; got != int64(3) {
		t.Errorf("row count = %v, want 3", got)
	}
}

func TestIngestCSV_ReplacesExistingTable(t *testing.T) {
	store := newTestStore(t)
	dataDir := t.TempDir()
	writeCSV(t, dataDir, "scores.csv", "Score\n1\n2\n")

	if _, err := store.IngestCSV(context.Background(), dataDir, io.Discard); err != nil {
		t.Fatal(err)
	}
	writeCSV(t, dataDir, "scores.csv", "Score\n5\n")
	if _, err := store.IngestCSV(context.Background(), dataDir, io.Discard); err != nil {
		t.Fatal(err)
	}

	table, err := store.Execute(context.Background(), "SELECT Score FROM scores")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 || table.Rows[0]["Score"] != int64(5) {
		t.Errorf("rows = %v, want single row with Score=5", table.Rows)
	}
}

func TestSchemaAndValueHints(t *testing.T) {
	store := newTestStore(t)
	dataDir := t.TempDir()
	writeCSV(t, dataDir, "students.csv", studentCSV)
	if _, err := store.IngestCSV(context.Background(), dataDir, io.Discard); err != nil {
		t.Fatal(err)
	}

	schema, err := store.Schema(context.Background())
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if !strings.Contains(schema, `CREATE TABLE "students"`) {
		t.Errorf("schema missing table DDL:\n%s", schema)
	}
	if !strings.Contains(schema, `"ReadingScore" INTEGER`) {
		t.Errorf("ReadingScore affinity not INTEGER:\n%s", schema)
	}

	hints, err := store.ValueHints(context.Background())
	if err != nil {
		t.Fatalf("ValueHints: %v", err)
	}
	if !strings.Contains(hints, "students.LunchType: free/reduced, standard") {
		t.Errorf("hints missing LunchType values:\n%s", hints)
	}
	// Integer columns never produce hints.
	if strings.Contains(hints, "ReadingScore") {
		t.Errorf("hints include non-text column:\n%s", hints)
	}
}

func TestExecute_RejectsNonSelect(t *testing.T) {
	store := newTestStore(t)

	for _, q := range []string{
		"DROP TABLE students",
		"INSERT INTO students VALUES (1)",
		"SELECT 1; DELETE FROM students",
		"",
	} {
		if _, err := store.Execute(context.Background(), q); err == nil {
			t.Errorf("Execute(%q) succeeded, want error", q)
		}
	}
}

func TestExecute_MergesStatements(t *testing.T) {
	store := newTestStore(t)
	dataDir := t.TempDir()
	writeCSV(t, dataDir, "a.csv", "X\n1\n2\n")
	writeCSV(t, dataDir, "b.csv", "Y\n9\n")
	if _, err := store.IngestCSV(context.Background(), dataDir, io.Discard); err != nil {
		t.Fatal(err)
	}

	table, err := store.Execute(context.Background(),
		"SELECT X FROM a ORDER BY X; SELECT Y FROM b")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Columns) != 2 || table.Columns[0] != "X" || table.Columns[1] != "Y" {
		t.Errorf("columns = %v, want [X Y]", table.Columns)
	}
	if len(table.Rows) != 3 {
		t.Errorf("rows = %d, want 3", len(table.Rows))
	}
	if table.Rows[0]["X"] != int64(1) || table.Rows[2]["Y"] != int64(9) {
		t.Errorf("unexpected row contents: %v", table.Rows)
	}
}

func TestTableName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Expanded_data_with_more_features.csv", "expanded_data_with_more_features"},
		{"Student Info-Basic.csv", "student_info_basic"},
		{"scores.CSV", "scores"},
		{"--weird--.csv", "weird"},
	}
	for _, tt := range tests {
		if got := tableName(tt.in); got != tt.want {
			t.Errorf("tableName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInferAffinities(t *testing.T) {
	header := []string{"a", "b", "c", "d"}
	rows := [][]string{
		{"1", "1.5", "x", ""},
		{"2", "3", "7", ""},
	}
	got := inferAffinities(header, rows)
	want := []string{"INTEGER", "REAL", "TEXT", "TEXT"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %s: got %s, want %s", header[i], got[i], want[i])
		}
	}
}
