// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docs

import (
	"context"
	"errors"
	"io"
	"testing"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// mockModel echoes how many passages it was given.
type mockModel struct {
	answer   string
	err      error
	passages []Passage
}

func (m *mockModel) Answer(_ context.Context, _ string, passages []Passage) (string, error) {
	m.passages = passages
	return m.answer, m.err
}

func TestAnswererQuery(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	writeDoc(t, dir, "inclusion.md", inclusionDoc)
	if _, err := store.IngestDir(context.Background(), dir, io.Discard); err != nil {
		t.Fatal(err)
	}

	model := &mockModel{answer: "Inclusive education means learning together."}
	a := NewAnswerer(store, model, types.DocumentsConfig{MaxPassages: 5}, zap.NewNop())

	text, cites, err := a.Query(context.Background(), "What is inclusive education?")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if text != model.answer {
		t.Errorf("text = %q, want model answer", text)
	}
	if len(model.passages) == 0 {
		t.Error("model received no passages")
	}
	if len(cites) == 0 || cites[0].Document != "inclusion.md" {
		t.Errorf("citations = %v, want inclusion.md first", cites)
	}
}

func TestAnswererQuery_ModelError(t *testing.T) {
	store := newTestStore(t)
	model := &mockModel{err: errors.New("model down")}
	a := NewAnswerer(store, model, types.DocumentsConfig{}, zap.NewNop())

	_, _, err := a.Query(context.Background(), "anything at all")
	if err == nil {
		t.Fatal("expected error from failing model")
	}
}

func TestCitations_Deduplicates(t *testing.T) {
	passages := []Passage{
		{Document: "a.md", Section: "Intro"},
		{Document: "a.md", Section: "Intro"},
		{Document: "b.md", Section: ""},
	}
	cites := citations(passages)
	if len(cites) != 2 {
		t.Fatalf("got %d citations, want 2", len(cites))
	}
	if cites[0].Document != "a.md" || cites[1].Document != "b.md" {
		t.Errorf("citations out of order: %v", cites)
	}
}
