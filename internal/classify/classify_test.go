// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// mockModel returns a fixed label or error and counts calls.
type mockModel struct {
	label string
	err   error
	calls int
}

func (m *mockModel) Classify(_ context.Context, _ string, _ []types.Turn) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.label, nil
}

func TestClassify_EmptyQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t "} {
		m := &mockModel{label: "tabular"}
		c := New(m, zap.NewNop())

		_, err := c.Classify(context.Background(), q, nil)
		if !errors.Is(err, types.ErrInvalidInput) {
			t.Errorf("question %q: got err %v, want ErrInvalidInput", q, err)
		}
		if m.calls != 0 {
			t.Errorf("question %q: model called %d times, want 0", q, m.calls)
		}
	}
}

func TestClassify_Labels(t *testing.T) {
	tests := []struct {
		label string
		want  types.Intent
	}{
		{"tabular", types.IntentTabular},
		{"document", types.IntentDocument},
		{"hybrid", types.IntentHybrid},
		{"  Tabular\n", types.IntentTabular},
		{"`sql`", types.IntentTabular},
		{"rag", types.IntentDocument},
		{"DOCUMENT.", types.IntentDocument},
		{"both", types.IntentHybrid},
	}

	for _, tt := range tests {
		m := &mockModel{label: tt.label}
		c := New(m, zap.NewNop())

		intent, err := c.Classify(context.Background(), "some question", nil)
		if err != nil {
			t.Errorf("label %q: unexpected error %v", tt.label, err)
			continue
		}
		if intent != tt.want {
			t.Errorf("label %q: got %s, want %s", tt.label, intent, tt.want)
		}
	}
}

func TestClassify_FallbackOnModelError(t *testing.T) {
	m := &mockModel{err: errors.New("model unavailable")}
	c := New(m, zap.NewNop())

	intent, err := c.Classify(context.Background(), "how many students?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent != types.IntentHybrid {
		t.Errorf("got %s, want hybrid fallback", intent)
	}
}

func TestClassify_FallbackOnUnparseableLabel(t *testing.T) {
	for _, label := range []string{"dunno", "", "tabular or document", "42"} {
		m := &mockModel{label: label}
		c := New(m, zap.NewNop())

		intent, err := c.Classify(context.Background(), "question", nil)
		if err != nil {
			t.Fatalf("label %q: unexpected error %v", label, err)
		}
		if intent != types.IntentHybrid {
			t.Errorf("label %q: got %s, want hybrid fallback", label, intent)
		}
	}
}

func TestParseLabel(t *testing.T) {
	if _, ok := ParseLabel("unknown"); ok {
		t.Error("ParseLabel accepted an unknown label")
	}
	if intent, ok := ParseLabel("table"); !ok || intent != types.IntentTabular {
		t.Errorf(`ParseLabel("table") = %s, %t`, intent, ok)
	}
}
