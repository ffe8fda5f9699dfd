// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import (
	"reflect"
	"testing"
)

func TestTruncate_WithinBound(t *testing.T) {
	table := scoreTable(3)
	got, truncated := Truncate(table, 5)
	if truncated {
		t.Error("truncated = true for a table within bound")
	}
	if got != table {
		t.Error("within-bound table was copied instead of returned unchanged")
	}
}

func TestTruncate_CapsRows(t *testing.T) {
	table := scoreTable(10)
	got, truncated := Truncate(table, 4)
	if !truncated {
		t.Fatal("truncated = false")
	}
	if len(got.Rows) != 4 {
		t.Fatalf("retained %d rows, want 4", len(got.Rows))
	}
	if !reflect.DeepEqual(got.Rows, table.Rows[:4]) {
		t.Error("retained rows are not the first 4 originals in order")
	}
	if !reflect.DeepEqual(got.Columns, table.Columns) {
		t.Error("columns changed")
	}
	// Original untouched.
	if len(table.Rows) != 10 {
		t.Error("input table mutated")
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	table := scoreTable(10)
	once, _ := Truncate(table, 4)
	twice, truncated := Truncate(once, 4)
	if truncated {
		t.Error("second truncation reported rows dropped")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("truncate(truncate(rows)) != truncate(rows)")
	}
}

func TestTruncate_NilAndZeroLimit(t *testing.T) {
	if got, truncated := Truncate(nil, 4); got != nil || truncated {
		t.Error("nil table mishandled")
	}
	table := scoreTable(3)
	if _, truncated := Truncate(table, 0); truncated {
		t.Error("zero limit truncated")
	}
}
