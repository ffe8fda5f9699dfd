// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/answer-engine/internal/aiclient"
)

// sqlPromptTmpl carries the schema and categorical value hints so generated
// WHERE clauses match the stored values.
var sqlPromptTmpl = template.Must(template.New("sql").Parse(`You translate user questions into SQL queries for a SQLite database.

Rules:
- Generate SELECT statements only. Never modify data.
- If a question can be answered from more than one table, generate one SELECT per table, separated by semicolons. Do not use UNION; the tables may hold distinct, possibly inconsistent data.
- Use only the tables and columns in the schema below.
{{if .Hints}}
Refer to these distinct categorical values while forming the query:
{{.Hints}}
{{end}}
Here is the schema:
{{.Schema}}

Examples:
- "average math score of students who completed test preparation" -> SELECT AVG(MathScore) FROM student_info_detailed WHERE TestPrep = 'completed'
- "how many students are first children" -> SELECT COUNT(*) FROM student_info_detailed WHERE IsFirstChild = 'yes'
- "list of students who scored above 90 in reading" -> SELECT * FROM student_info_basic WHERE ReadingScore > 90

Respond with only the SQL, no explanation and no markdown fences.`))

// ClaudeGenerator produces SQL via the Claude Messages API.
type ClaudeGenerator struct {
	Client *aiclient.Client

	// Schema and Hints come from Store.Schema and Store.ValueHints at startup.
	Schema string
	Hints  string
}

// Generate returns the SQL text for a question, with any markdown fences the
// model wrapped it in stripped.
func (g *ClaudeGenerator) Generate(ctx context.Context, question string) (string, error) {
	var sys bytes.Buffer
	err := sqlPromptTmpl.Execute(&sys, struct{ Schema, Hints string }{g.Schema, g.Hints})
	if err != nil {
		return "", fmt.Errorf("rendering SQL prompt: %w", err)
	}

	text, err := g.Client.Complete(ctx, sys.String(), []aiclient.Message{
		{Role: "user", Content: question},
	}, 1024)
	if err != nil {
		return "", err
	}
	return stripFences(text), nil
}

// stripFences removes a surrounding ```sql ... ``` block if present.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```sql")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
