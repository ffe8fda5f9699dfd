// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/pdiddy/answer-engine/internal/aiclient"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// intentPromptTmpl instructs the model to emit exactly one label. The table
// schema is included so data-analysis questions route to the tabular store.
var intentPromptTmpl = template.Must(template.New("intent").Parse(`You are an intent classifier for a question-answering system with two knowledge sources: a structured SQL database and a document corpus.

Given the user's question, respond with exactly one word:
- tabular: the question asks for patterns, averages, counts, trends, group comparisons, or any analysis of structured data in tables.
- document: the question asks for definitions, context, or explanations that would be found in documents.
- hybrid: answering needs both the documents and the data.

Examples:
- "What is the average reading score by lunch type?" -> tabular
- "How many students are first children?" -> tabular
- "Why is parental education important?" -> document
- "What is inclusive education?" -> document
- "Show me data and explanation about lunch impact" -> hybrid

{{if .Schema}}Available tables and columns:
{{.Schema}}

Consider this schema when deciding whether a question involves structured data.
{{end}}Respond with only the label, no other text.`))

// ClaudeModel classifies intent via the Claude Messages API. Prior
// conversation turns are replayed as context before the question.
type ClaudeModel struct {
	Client *aiclient.Client

	// Schema is the tabular store's schema summary, rendered into the
	// system prompt. Optional.
	Schema string
}

// Classify sends the question (with history as prior turns) and returns the
// raw label text.
func (c *ClaudeModel) Classify(ctx context.Context, question string, history []types.Turn) (string, error) {
	var sys bytes.Buffer
	if err := intentPromptTmpl.Execute(&sys, struct{ Schema string }{c.Schema}); err != nil {
		return "", fmt.Errorf("rendering intent prompt: %w", err)
	}

	msgs := make([]aiclient.Message, 0, 2*len(history)+1)
	for _, turn := range history {
		msgs = append(msgs,
			aiclient.Message{Role: "user", Content: turn.Question},
			aiclient.Message{Role: "assistant", Content: turn.Answer},
		)
	}
	msgs = append(msgs, aiclient.Message{Role: "user", Content: question})

	return c.Client.Complete(ctx, sys.String(), msgs, 16)
}
