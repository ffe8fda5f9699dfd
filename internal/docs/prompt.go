// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/answer-engine/internal/aiclient"
)

// docSystemPrompt keeps answers grounded in the retrieved passages rather
// than general knowledge.
const docSystemPrompt = `You answer questions using the document passages provided with each question.

- Reply in a short, direct manner.
- Prefer the passage content over general knowledge.
- If the question is unrelated to the passages, say so in the reply.
- If the passages do not contain the answer, clearly state that the information is not available in the current documents, then give your best general-knowledge response.`

// ClaudeModel writes passage-grounded answers via the Claude Messages API.
type ClaudeModel struct {
	Client *aiclient.Client
}

// Answer renders the passages above the question and asks for an answer.
func (m *ClaudeModel) Answer(ctx context.Context, question string, passages []Passage) (string, error) {
	var b strings.Builder
	if len(passages) == 0 {
		b.WriteString("No passages were retrieved for this question.\n\n")
	} else {
		b.WriteString("Passages:\n\n")
		for i, p := range passages {
			fmt.Fprintf(&b, "[%d] %s", i+1, p.Document)
			if p.Section != "" {
				fmt.Fprintf(&b, " / %s", p.Section)
			}
			b.WriteString("\n")
			b.WriteString(p.Content)
			b.WriteString("\n\n")
		}
	}
	fmt.Fprintf(&b, "Question: %s", question)

	return m.Client.Complete(ctx, docSystemPrompt, []aiclient.Message{
		{Role: "user", Content: b.String()},
	}, 1024)
}
