// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize reconciles answers from several sources into one
// user-facing response.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/answer-engine/internal/aiclient"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// summarySystemPrompt matches the register of the per-source answers it
// blends: one coherent assistant voice, no raw SQL or table formatting.
const summarySystemPrompt = `You are a summarizer. You take answers produced from different knowledge sources for the same question and create one clear, concise, natural response.

- Focus on clarity; do not include raw SQL, table markup, or source labels.
- Make it read like a single coherent assistant response.
- If you receive only one answer, simply rephrase it nicely.`

// Agent synthesizes fragment payloads via the Claude Messages API.
type Agent struct {
	Client *aiclient.Client
}

// Synthesize combines the ordered payloads into one answer.
func (a *Agent) Synthesize(ctx context.Context, parts []types.SummaryInput) (string, error) {
	if len(parts) == 0 {
		return "", fmt.Errorf("nothing to synthesize")
	}
	return a.Client.Complete(ctx, summarySystemPrompt, []aiclient.Message{
		{Role: "user", Content: Combine(parts)},
	}, 1024)
}

// Combine renders the payloads as numbered answers, in input order.
func Combine(parts []types.SummaryInput) string {
	blocks := make([]string, 0, len(parts))
	for i, p := range parts {
		blocks = append(blocks, fmt.Sprintf("Answer %d: %s", i+1, p.Payload))
	}
	return strings.Join(blocks, "\n\n")
}
