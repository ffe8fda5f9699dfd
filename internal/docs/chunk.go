// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docs

import "strings"

// maxChunkLen bounds passage size for documents without heading structure.
const maxChunkLen = 2000

// chunk is one passage-to-be: a heading (may be empty) and its body.
type chunk struct {
	section string
	body    string
}

// chunkDocument splits Markdown or plain text into passages on heading
// boundaries (#, ##, ###). Headingless stretches longer than maxChunkLen are
// split further on paragraph boundaries.
func chunkDocument(content string) []chunk {
	lines := strings.Split(content, "\n")

	var chunks []chunk
	currentHeading := ""
	var bodyLines []string

	flush := func() {
		body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
		bodyLines = nil
		if body == "" {
			return
		}
		for _, part := range splitLong(body) {
			chunks = append(chunks, chunk{section: currentHeading, body: part})
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			flush()
			currentHeading = stripHeadingPrefix(trimmed)
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	flush()

	return chunks
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, "# ") ||
		strings.HasPrefix(line, "## ") ||
		strings.HasPrefix(line, "### ")
}

func stripHeadingPrefix(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

// splitLong breaks an oversized body on paragraph boundaries, packing
// consecutive paragraphs up to maxChunkLen per part.
func splitLong(body string) []string {
	if len(body) <= maxChunkLen {
		return []string{body}
	}

	paragraphs := strings.Split(body, "\n\n")
	var parts []string
	var buf strings.Builder

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if buf.Len() > 0 && buf.Len()+len(p) > maxChunkLen {
			parts = append(parts, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(p)
	}
	if buf.Len() > 0 {
		parts = append(parts, buf.String())
	}
	return parts
}
