// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// AnswerModel abstracts the model that writes a passage-grounded answer so
// tests can supply a mock.
type AnswerModel interface {
	Answer(ctx context.Context, question string, passages []Passage) (string, error)
}

// Answerer retrieves relevant passages and asks the model for an answer
// grounded in them.
type Answerer struct {
	store       *Store
	model       AnswerModel
	maxPassages int
	log         *zap.Logger
}

// NewAnswerer returns an Answerer over the given store and model.
func NewAnswerer(store *Store, model AnswerModel, cfg types.DocumentsConfig, log *zap.Logger) *Answerer {
	maxPassages := cfg.MaxPassages
	if maxPassages <= 0 {
		maxPassages = 8
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Answerer{store: store, model: model, maxPassages: maxPassages, log: log}
}

// Query answers a question from the corpus. Citations point at the documents
// and sections of the passages handed to the model.
func (a *Answerer) Query(ctx context.Context, question string) (string, []types.Citation, error) {
	passages, err := a.store.Search(ctx, question, a.maxPassages)
	if err != nil {
		return "", nil, fmt.Errorf("retrieving passages: %w", err)
	}

	a.log.Debug("retrieved passages", zap.Int("count", len(passages)))

	text, err := a.model.Answer(ctx, question, passages)
	if err != nil {
		return "", nil, fmt.Errorf("answering from documents: %w", err)
	}

	return text, citations(passages), nil
}

// citations deduplicates passage provenance, preserving retrieval order.
func citations(passages []Passage) []types.Citation {
	var out []types.Citation
	seen := make(map[types.Citation]bool)
	for _, p := range passages {
		c := types.Citation{Document: p.Document, Section: p.Section}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
