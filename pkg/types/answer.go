// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the answer engine: intents,
// answer fragments, orchestration results, and per-stage configuration.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Intent is the classified category of a question, driving dispatch.
type Intent string

const (
	// IntentTabular routes to the structured store only.
	IntentTabular Intent = "tabular"

	// IntentDocument routes to the document corpus only.
	IntentDocument Intent = "document"

	// IntentHybrid routes to both sources, reconciled by summarization.
	IntentHybrid Intent = "hybrid"
)

// Valid reports whether i is one of the three enumerated intents.
func (i Intent) Valid() bool {
	return i == IntentTabular || i == IntentDocument || i == IntentHybrid
}

// Source identifies which backend produced an AnswerFragment.
type Source string

const (
	SourceTabular  Source = "tabular"
	SourceDocument Source = "document"
)

// FragmentStatus is the outcome of one answerer invocation.
type FragmentStatus string

const (
	// StatusOK means the answerer returned a usable payload.
	StatusOK FragmentStatus = "ok"

	// StatusFailed means the answerer errored or timed out, retries included.
	StatusFailed FragmentStatus = "failed"

	// StatusEmpty means the answerer succeeded but returned nothing usable:
	// zero rows, or blank text.
	StatusEmpty FragmentStatus = "empty"
)

// Turn is one prior question/answer exchange. History is caller-owned and
// passed in read-only; the engine never mutates or retains it.
type Turn struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Table is an ordered tabular result: column order is the answerer's original
// SELECT order and row order is the answerer's original row order.
type Table struct {
	Columns []string         `json:"columns" yaml:"columns"`
	Rows    []map[string]any `json:"rows" yaml:"rows"`
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Citation is a provenance pointer attached to a document answer.
type Citation struct {
	Document string `json:"document" yaml:"document"`
	Section  string `json:"section,omitempty" yaml:"section,omitempty"`
}

// AnswerFragment is one backend's contribution to an orchestration run.
// Fragments are owned by the router during the run and carried on the
// OrchestrationResult afterwards for traceability.
type AnswerFragment struct {
	Source Source         `json:"source" yaml:"source"`
	Status FragmentStatus `json:"status" yaml:"status"`

	// Table is set for tabular fragments; Text for document fragments.
	Table *Table `json:"table,omitempty" yaml:"table,omitempty"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`

	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// RowCount is the original row count returned by the tabular answerer,
	// before any truncation.
	RowCount int `json:"row_count,omitempty" yaml:"row_count,omitempty"`

	// Err holds the final error message for failed fragments.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the fragment carries a usable payload.
func (f AnswerFragment) OK() bool { return f.Status == StatusOK }

// OrchestrationResult is the final response for one question. Created once
// per run, immutable thereafter.
type OrchestrationResult struct {
	// RunID uniquely identifies the orchestration run.
	RunID string `json:"run_id" yaml:"run_id"`

	Question string `json:"question" yaml:"question"`
	Intent   Intent `json:"intent" yaml:"intent"`

	// AnswerText is the single coherent answer produced by the merge policy.
	AnswerText string `json:"answer_text" yaml:"answer_text"`

	// Fragments records every answerer invocation attempted during the run,
	// including failed and empty branches.
	Fragments []AnswerFragment `json:"fragments" yaml:"fragments"`

	// Truncated is true iff tabular rows were capped below the original count.
	Truncated bool `json:"truncated" yaml:"truncated"`

	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Fragment returns the first fragment from the given source, or nil.
func (r *OrchestrationResult) Fragment(src Source) *AnswerFragment {
	for i := range r.Fragments {
		if r.Fragments[i].Source == src {
			return &r.Fragments[i]
		}
	}
	return nil
}

// Degraded reports whether any attempted branch failed to contribute.
func (r *OrchestrationResult) Degraded() bool {
	for _, f := range r.Fragments {
		if f.Status != StatusOK {
			return true
		}
	}
	return false
}

// Summary returns a one-line status for transcripts and debug output.
func (r *OrchestrationResult) Summary() string {
	parts := make([]string, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		parts = append(parts, fmt.Sprintf("%s=%s", f.Source, f.Status))
	}
	return fmt.Sprintf("intent=%s truncated=%t %s", r.Intent, r.Truncated, strings.Join(parts, " "))
}

// SummaryInput is one payload handed to the summarizer, already rendered to
// text and truncated. Tabular input precedes document input by convention.
type SummaryInput struct {
	Source  Source `json:"source" yaml:"source"`
	Payload string `json:"payload" yaml:"payload"`
}
