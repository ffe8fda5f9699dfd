// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcript appends orchestration runs to a YAML log file, one
// document per run, for offline inspection of routing decisions.
package transcript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// FragmentNote is the per-branch status recorded for a run.
type FragmentNote struct {
	Source types.Source         `yaml:"source"`
	Status types.FragmentStatus `yaml:"status"`
	Rows   int                  `yaml:"rows,omitempty"`
	Error  string               `yaml:"error,omitempty"`
}

// Entry is one logged orchestration run.
type Entry struct {
	Timestamp time.Time      `yaml:"timestamp"`
	RunID     string         `yaml:"run_id"`
	Question  string         `yaml:"question"`
	Intent    types.Intent   `yaml:"intent"`
	Answer    string         `yaml:"answer"`
	Truncated bool           `yaml:"truncated"`
	Elapsed   string         `yaml:"elapsed"`
	Fragments []FragmentNote `yaml:"fragments"`
}

// FromResult converts an orchestration result into a transcript entry.
func FromResult(res *types.OrchestrationResult) Entry {
	e := Entry{
		Timestamp: time.Now().UTC(),
		RunID:     res.RunID,
		Question:  res.Question,
		Intent:    res.Intent,
		Answer:    res.AnswerText,
		Truncated: res.Truncated,
		Elapsed:   res.Elapsed.Round(time.Millisecond).String(),
	}
	for _, f := range res.Fragments {
		e.Fragments = append(e.Fragments, FragmentNote{
			Source: f.Source,
			Status: f.Status,
			Rows:   f.RowCount,
			Error:  f.Err,
		})
	}
	return e
}

// Append writes the entry to path as one YAML document, creating the file
// if needed.
func Append(path string, e Entry) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening transcript %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString("---\n"); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}

// Read loads every entry from path. A missing file yields no entries.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening transcript %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	dec := yaml.NewDecoder(f)
	for {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return entries, fmt.Errorf("decoding transcript: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
