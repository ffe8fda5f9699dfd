// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import "github.com/pdiddy/answer-engine/pkg/types"

// Truncate caps a table at the first limit rows in their original order.
// The boolean reports whether rows were dropped; a table already within
// bound is returned unchanged. Deterministic and idempotent.
func Truncate(t *types.Table, limit int) (*types.Table, bool) {
	if t == nil || limit <= 0 || len(t.Rows) <= limit {
		return t, false
	}
	return &types.Table{
		Columns: t.Columns,
		Rows:    t.Rows[:limit:limit],
	}, true
}
