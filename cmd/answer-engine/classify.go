// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/aiclient"
	"github.com/pdiddy/answer-engine/internal/classify"
	"github.com/pdiddy/answer-engine/internal/tabular"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [question]",
	Short: "Print the routing decision for a question without answering it",
	Long: `Classify runs only the intent stage and prints the label: tabular,
document, or hybrid. Useful for tuning data or inspecting routing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	log, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := engineConfig()
	if cfg.Classifier.APIKey == "" {
		return fmt.Errorf("no API key: set .secrets/anthropic-api-key or ANSWER_ENGINE_API_KEY")
	}

	ctx := context.Background()

	// The schema is optional context; classification proceeds without it
	// when the tabular store cannot be opened.
	var schema string
	if store, err := tabular.Open(cfg.Tabular); err == nil {
		schema, _ = store.Schema(ctx)
		store.Close()
	}

	classifier := classify.New(&classify.ClaudeModel{
		Client: &aiclient.Client{APIKey: cfg.Classifier.APIKey, Model: cfg.Classifier.Model},
		Schema: schema,
	}, log)

	intent, err := classifier.Classify(ctx, question, nil)
	if err != nil {
		return err
	}

	fmt.Println(intent)
	return nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
