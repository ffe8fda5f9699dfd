// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func TestAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.yaml")

	res := &types.OrchestrationResult{
		RunID:      "run-1",
		Question:   "What is inclusive education?",
		Intent:     types.IntentDocument,
		AnswerText: "All students learn together.",
		Fragments: []types.AnswerFragment{
			{Source: types.SourceDocument, Status: types.StatusOK},
		},
		Elapsed: 1234 * time.Millisecond,
	}

	require.NoError(t, Append(path, FromResult(res)))
	require.NoError(t, Append(path, FromResult(&types.OrchestrationResult{
		RunID:     "run-2",
		Question:  "How many students?",
		Intent:    types.IntentTabular,
		Truncated: true,
		Fragments: []types.AnswerFragment{
			{Source: types.SourceTabular, Status: types.StatusOK, RowCount: 900},
		},
	})))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, types.IntentDocument, entries[0].Intent)
	assert.Equal(t, "1.234s", entries[0].Elapsed)
	require.Len(t, entries[0].Fragments, 1)
	assert.Equal(t, types.StatusOK, entries[0].Fragments[0].Status)

	assert.True(t, entries[1].Truncated)
	assert.Equal(t, 900, entries[1].Fragments[0].Rows)
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}
