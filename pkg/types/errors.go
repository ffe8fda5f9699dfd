// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors for the orchestration engine. Everything below
// ErrAllSourcesUnavailable is recovered locally and never aborts a run.
var (
	// ErrInvalidInput rejects empty or whitespace-only questions before any
	// external call is made. Non-retryable.
	ErrInvalidInput = errors.New("invalid input: question is empty")

	// ErrAllSourcesUnavailable is returned when every attempted branch of a
	// run failed or produced nothing. The one condition with no answer.
	ErrAllSourcesUnavailable = errors.New("all answer sources unavailable")

	// ErrSummarizationFailed marks a summarizer call that errored or timed
	// out. Recovered by concatenating the raw fragment payloads.
	ErrSummarizationFailed = errors.New("summarization failed")
)
