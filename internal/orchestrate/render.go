// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// RenderTable writes a table as pipe-separated text, one line per row, in
// the table's column and row order. originalRows is the row count before
// truncation; when rows were dropped a "showing N of M rows" note is
// appended so downstream consumers see the cap.
func RenderTable(t *types.Table, originalRows int) string {
	if t == nil || len(t.Rows) == 0 {
		return "No rows returned."
	}

	var b strings.Builder
	b.WriteString(strings.Join(t.Columns, " | "))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(strings.Join(t.Columns, " | "))))
	b.WriteString("\n")

	for _, row := range t.Rows {
		vals := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			vals[i] = formatValue(row[col])
		}
		b.WriteString(strings.Join(vals, " | "))
		b.WriteString("\n")
	}

	if originalRows > len(t.Rows) {
		fmt.Fprintf(&b, "showing %d of %d rows\n", len(t.Rows), originalRows)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
