// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/internal/aiclient"
	"github.com/pdiddy/answer-engine/internal/classify"
	"github.com/pdiddy/answer-engine/internal/docs"
	"github.com/pdiddy/answer-engine/internal/orchestrate"
	"github.com/pdiddy/answer-engine/internal/summarize"
	"github.com/pdiddy/answer-engine/internal/tabular"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// engine bundles the router with the stores it holds open.
type engine struct {
	router   *orchestrate.Router
	tabStore *tabular.Store
	docStore *docs.Store
}

func (e *engine) Close() {
	if e.tabStore != nil {
		e.tabStore.Close()
	}
	if e.docStore != nil {
		e.docStore.Close()
	}
}

// newEngine opens both stores, snapshots the tabular schema for the prompts,
// and wires the router. The caller owns Close.
func newEngine(ctx context.Context, cfg types.EngineConfig, log *zap.Logger) (*engine, error) {
	if cfg.Classifier.APIKey == "" {
		return nil, fmt.Errorf("no API key: set .secrets/anthropic-api-key or ANSWER_ENGINE_API_KEY")
	}

	tabStore, err := tabular.Open(cfg.Tabular)
	if err != nil {
		return nil, err
	}

	docStore, err := docs.OpenStore(cfg.Documents)
	if err != nil {
		tabStore.Close()
		return nil, err
	}

	schema, err := tabStore.Schema(ctx)
	if err != nil {
		tabStore.Close()
		docStore.Close()
		return nil, err
	}
	hints, err := tabStore.ValueHints(ctx)
	if err != nil {
		tabStore.Close()
		docStore.Close()
		return nil, err
	}

	newClient := func(ai types.AIConfig) *aiclient.Client {
		return &aiclient.Client{APIKey: ai.APIKey, Model: ai.Model}
	}

	classifier := classify.New(&classify.ClaudeModel{
		Client: newClient(cfg.Classifier.AIConfig),
		Schema: schema,
	}, log)

	tabAnswerer := tabular.NewAnswerer(tabStore, &tabular.ClaudeGenerator{
		Client: newClient(cfg.Tabular.AIConfig),
		Schema: schema,
		Hints:  hints,
	}, log)

	docAnswerer := docs.NewAnswerer(docStore, &docs.ClaudeModel{
		Client: newClient(cfg.Documents.AIConfig),
	}, cfg.Documents, log)

	summarizer := &summarize.Agent{Client: newClient(cfg.Summary.AIConfig)}

	return &engine{
		router:   orchestrate.NewRouter(classifier, tabAnswerer, docAnswerer, summarizer, cfg.Orchestrator, log),
		tabStore: tabStore,
		docStore: docStore,
	}, nil
}
