// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether a question needs the tabular store, the
// document corpus, or both.
package classify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// DecisionModel abstracts the underlying intent model so tests can supply a
// mock. It returns one raw label; the Classifier owns parsing and fallback.
type DecisionModel interface {
	Classify(ctx context.Context, question string, history []types.Turn) (string, error)
}

// Classifier validates a question and maps the decision model's label to an
// Intent. Model failures and unparseable labels fall back to IntentHybrid,
// the safest superset; that policy is fixed, not configuration.
type Classifier struct {
	model DecisionModel
	log   *zap.Logger
}

// New returns a Classifier over the given decision model.
func New(model DecisionModel, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{model: model, log: log}
}

// Classify returns the intent for a question. Empty or whitespace-only
// questions are rejected with types.ErrInvalidInput before the model is
// consulted.
func (c *Classifier) Classify(ctx context.Context, question string, history []types.Turn) (types.Intent, error) {
	if strings.TrimSpace(question) == "" {
		return "", types.ErrInvalidInput
	}

	label, err := c.model.Classify(ctx, question, history)
	if err != nil {
		c.log.Warn("classifier model failed, falling back to hybrid", zap.Error(err))
		return types.IntentHybrid, nil
	}

	intent, ok := ParseLabel(label)
	if !ok {
		c.log.Warn("unparseable intent label, falling back to hybrid", zap.String("label", label))
		return types.IntentHybrid, nil
	}
	return intent, nil
}

// ParseLabel maps a raw model label to an Intent. Matching is lenient:
// case-insensitive, surrounding punctuation stripped, and the labels the
// original decision prompts used ("sql", "rag") accepted as aliases.
func ParseLabel(label string) (types.Intent, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(label))
	cleaned = strings.Trim(cleaned, "`\"'.: \t\n")

	switch cleaned {
	case "tabular", "sql", "table":
		return types.IntentTabular, true
	case "document", "rag", "docs":
		return types.IntentDocument, true
	case "hybrid", "both":
		return types.IntentHybrid, true
	}
	return "", false
}
