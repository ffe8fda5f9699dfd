// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrate routes a question to the right answerers and merges
// their outputs into one response. The original graph-of-nodes orchestration
// is expressed here as a plain sequence of conditional calls: classify,
// dispatch, truncate, merge.
package orchestrate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// IntentClassifier decides which sources a question needs.
type IntentClassifier interface {
	Classify(ctx context.Context, question string, history []types.Turn) (types.Intent, error)
}

// TabularAnswerer returns rows from the structured store.
type TabularAnswerer interface {
	Query(ctx context.Context, question string) (*types.Table, error)
}

// DocumentAnswerer returns a passage-grounded answer from the corpus.
type DocumentAnswerer interface {
	Query(ctx context.Context, question string) (string, []types.Citation, error)
}

// Summarizer condenses several rendered payloads into one answer.
type Summarizer interface {
	Synthesize(ctx context.Context, parts []types.SummaryInput) (string, error)
}

// Router sequences classifier, answerers, truncation, and summarization for
// one question at a time. Routers hold no cross-request state; concurrent
// Answer calls are independent.
type Router struct {
	classifier IntentClassifier
	tabular    TabularAnswerer
	document   DocumentAnswerer
	summarizer Summarizer
	cfg        types.OrchestratorConfig
	log        *zap.Logger
}

// NewRouter wires the four collaborators under the given policy config.
func NewRouter(classifier IntentClassifier, tabular TabularAnswerer, document DocumentAnswerer, summarizer Summarizer, cfg types.OrchestratorConfig, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		classifier: classifier,
		tabular:    tabular,
		document:   document,
		summarizer: summarizer,
		cfg:        cfg.Normalize(),
		log:        log,
	}
}

// Answer runs one orchestration: classify, dispatch, truncate, merge.
// Invalid input and the all-sources-unavailable condition are the only
// errors; every other failure degrades into the fragments.
func (r *Router) Answer(ctx context.Context, question string, history []types.Turn) (*types.OrchestrationResult, error) {
	start := time.Now()

	intent, err := r.classify(ctx, question, history)
	if err != nil {
		return nil, err
	}

	var fragments []types.AnswerFragment
	switch intent {
	case types.IntentTabular:
		fragments = append(fragments, r.runTabular(ctx, question))
	case types.IntentDocument:
		fragments = append(fragments, r.runDocument(ctx, question))
	case types.IntentHybrid:
		// Both branches start together and are joined before merging.
		var (
			wg      sync.WaitGroup
			tabFrag types.AnswerFragment
			docFrag types.AnswerFragment
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			tabFrag = r.runTabular(ctx, question)
		}()
		go func() {
			defer wg.Done()
			docFrag = r.runDocument(ctx, question)
		}()
		wg.Wait()
		fragments = append(fragments, tabFrag, docFrag)
	default:
		return nil, fmt.Errorf("classifier returned unknown intent %q", intent)
	}

	// Truncate before any merge so the summarizer never sees unbounded rows.
	truncated := false
	for i := range fragments {
		f := &fragments[i]
		if f.Source != types.SourceTabular || f.Table == nil {
			continue
		}
		capped, did := Truncate(f.Table, r.cfg.TruncationRowLimit)
		if did {
			f.Table = capped
			truncated = true
			r.log.Info("truncated tabular result",
				zap.Int("original_rows", f.RowCount),
				zap.Int("retained_rows", capped.RowCount()))
		}
	}

	answer, err := r.merge(ctx, intent, fragments)
	if err != nil {
		return nil, err
	}

	return &types.OrchestrationResult{
		RunID:      uuid.NewString(),
		Question:   question,
		Intent:     intent,
		AnswerText: answer,
		Fragments:  fragments,
		Truncated:  truncated,
		Elapsed:    time.Since(start),
	}, nil
}

func (r *Router) classify(ctx context.Context, question string, history []types.Turn) (types.Intent, error) {
	cctx, cancel := context.WithTimeout(ctx, r.cfg.PerCallTimeout)
	defer cancel()

	intent, err := r.classifier.Classify(cctx, question, history)
	if err != nil {
		// ErrInvalidInput propagates unchanged; the classifier already
		// absorbed model failures via its hybrid fallback.
		return "", err
	}
	return intent, nil
}

// runTabular invokes the tabular answerer with timeout and retry, capturing
// the outcome as a fragment.
func (r *Router) runTabular(ctx context.Context, question string) types.AnswerFragment {
	frag := types.AnswerFragment{Source: types.SourceTabular}

	var table *types.Table
	err := r.callWithRetry(ctx, func(cctx context.Context) error {
		var qerr error
		table, qerr = r.tabular.Query(cctx, question)
		return qerr
	})
	switch {
	case err != nil:
		frag.Status = types.StatusFailed
		frag.Err = err.Error()
		r.log.Warn("tabular branch failed", zap.Error(err))
	case table.RowCount() == 0:
		frag.Status = types.StatusEmpty
		frag.Table = table
	default:
		frag.Status = types.StatusOK
		frag.Table = table
		frag.RowCount = table.RowCount()
	}
	return frag
}

// runDocument invokes the document answerer with timeout and retry,
// capturing the outcome as a fragment.
func (r *Router) runDocument(ctx context.Context, question string) types.AnswerFragment {
	frag := types.AnswerFragment{Source: types.SourceDocument}

	var (
		text  string
		cites []types.Citation
	)
	err := r.callWithRetry(ctx, func(cctx context.Context) error {
		var qerr error
		text, cites, qerr = r.document.Query(cctx, question)
		return qerr
	})
	switch {
	case err != nil:
		frag.Status = types.StatusFailed
		frag.Err = err.Error()
		r.log.Warn("document branch failed", zap.Error(err))
	case strings.TrimSpace(text) == "":
		frag.Status = types.StatusEmpty
	default:
		frag.Status = types.StatusOK
		frag.Text = text
		frag.Citations = cites
	}
	return frag
}

// callWithRetry runs one answerer call under the per-call timeout, retrying
// a failure at most cfg.AnswerRetries times with the same input. A cancelled
// parent context stops further attempts.
func (r *Router) callWithRetry(ctx context.Context, call func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= r.cfg.AnswerRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		cctx, cancel := context.WithTimeout(ctx, r.cfg.PerCallTimeout)
		err := call(cctx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < r.cfg.AnswerRetries {
			r.log.Warn("answerer call failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
		}
	}
	return lastErr
}

// merge applies the answer policy: single source passes through, hybrid with
// both sources ok is summarized, a degraded hybrid uses the surviving
// payload, and a run with no usable fragment fails.
func (r *Router) merge(ctx context.Context, intent types.Intent, fragments []types.AnswerFragment) (string, error) {
	var ok []types.AnswerFragment
	for _, f := range fragments {
		if f.OK() {
			ok = append(ok, f)
		}
	}

	switch {
	case len(ok) == 0:
		return "", types.ErrAllSourcesUnavailable

	case len(ok) == 1:
		if intent == types.IntentHybrid {
			r.log.Info("hybrid run degraded to single source", zap.String("source", string(ok[0].Source)))
		}
		return renderFragment(ok[0]), nil

	default:
		return r.summarizeFragments(ctx, ok)
	}
}

// summarizeFragments hands the rendered payloads to the summarizer, tabular
// before document, and falls back to labeled concatenation when the
// summarizer fails so the user still receives an answer.
func (r *Router) summarizeFragments(ctx context.Context, fragments []types.AnswerFragment) (string, error) {
	parts := make([]types.SummaryInput, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, types.SummaryInput{Source: f.Source, Payload: renderFragment(f)})
	}

	cctx, cancel := context.WithTimeout(ctx, r.cfg.PerCallTimeout)
	defer cancel()

	text, err := r.summarizer.Synthesize(cctx, parts)
	if err != nil {
		r.log.Warn("summarization failed, concatenating raw payloads",
			zap.Error(fmt.Errorf("%w: %w", types.ErrSummarizationFailed, err)))
		return concatenate(parts), nil
	}
	return text, nil
}

// concatenate joins payloads with labeled separators, the degraded stand-in
// for a synthesized answer.
func concatenate(parts []types.SummaryInput) string {
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		blocks = append(blocks, fmt.Sprintf("[%s answer]\n%s", p.Source, p.Payload))
	}
	return strings.Join(blocks, "\n\n")
}

// renderFragment produces the textual payload of a fragment: document text
// passes through, tables are rendered with the truncation note if rows were
// capped.
func renderFragment(f types.AnswerFragment) string {
	if f.Source == types.SourceTabular {
		return RenderTable(f.Table, f.RowCount)
	}
	return f.Text
}
