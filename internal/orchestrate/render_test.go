// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import (
	"strings"
	"testing"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func TestRenderTable(t *testing.T) {
	table := &types.Table{
		Columns: []string{"Gender", "Score"},
		Rows: []map[string]any{
			{"Gender": "female", "Score": int64(95)},
			{"Gender": "male", "Score": nil},
		},
	}

	out := RenderTable(table, 2)
	lines := strings.Split(out, "\n")
	if lines[0] != "Gender | Score" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "female | 95" {
		t.Errorf("row 1 = %q", lines[2])
	}
	if lines[3] != "male | " {
		t.Errorf("NULL not rendered blank: %q", lines[3])
	}
	if strings.Contains(out, "showing") {
		t.Errorf("unexpected truncation note:\n%s", out)
	}
}

func TestRenderTable_TruncationNote(t *testing.T) {
	table := &types.Table{
		Columns: []string{"n"},
		Rows:    []map[string]any{{"n": int64(1)}},
	}
	out := RenderTable(table, 40)
	if !strings.Contains(out, "showing 1 of 40 rows") {
		t.Errorf("note missing:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(nil, 0); got != "No rows returned." {
		t.Errorf("nil table = %q", got)
	}
	if got := RenderTable(&types.Table{Columns: []string{"a"}}, 0); got != "No rows returned." {
		t.Errorf("zero-row table = %q", got)
	}
}

func TestFormatValue_Float(t *testing.T) {
	if got := formatValue(72.5); got != "72.5" {
		t.Errorf("float = %q", got)
	}
	if got := formatValue(70.0); got != "70" {
		t.Errorf("whole float = %q", got)
	}
}
