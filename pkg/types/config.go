package types

import "time"

// AIConfig holds shared settings for components that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ClassifierConfig holds settings for the intent classification stage.
type ClassifierConfig struct {
	AIConfig `yaml:",inline"`
}

// TabularConfig holds settings for the tabular answerer and its SQLite store.
type TabularConfig struct {
	AIConfig `yaml:",inline"`

	// DBPath is the SQLite database file holding the ingested tables.
	DBPath string `json:"db_path" yaml:"db_path"`

	// DataDir is the directory of CSV files loaded by ingestion.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ValueHintLimit caps how many distinct values per column are surfaced
	// to the SQL prompt (default 20).
	ValueHintLimit int `json:"value_hint_limit" yaml:"value_hint_limit"`
}

// DocumentsConfig holds settings for the document answerer and its passage index.
type DocumentsConfig struct {
	AIConfig `yaml:",inline"`

	// IndexPath is the SQLite database file holding the FTS5 passage index.
	IndexPath string `json:"index_path" yaml:"index_path"`

	// DocsDir is the directory of Markdown/plain-text documents loaded by ingestion.
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`

	// MaxPassages is the number of retrieved passages handed to the answer
	// model (default 8).
	MaxPassages int `json:"max_passages" yaml:"max_passages"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	AIConfig `yaml:",inline"`
}

// OrchestratorConfig holds the routing policy knobs consumed by the core.
type OrchestratorConfig struct {
	// TruncationRowLimit caps tabular rows before merging or rendering
	// (default 500). Must be > 0.
	TruncationRowLimit int `json:"truncation_row_limit" yaml:"truncation_row_limit"`

	// PerCallTimeout bounds each external call: classifier, answerers,
	// summarizer (default 60s).
	PerCallTimeout time.Duration `json:"per_call_timeout" yaml:"per_call_timeout"`

	// AnswerRetries is how many times a failed answerer call is retried with
	// the same input before its fragment is marked failed (default 1).
	AnswerRetries int `json:"answer_retries" yaml:"answer_retries"`
}

const (
	DefaultTruncationRowLimit = 500
	DefaultPerCallTimeout     = 60 * time.Second
	DefaultAnswerRetries      = 1
)

// Normalize fills zero-valued policy knobs with their defaults.
func (c OrchestratorConfig) Normalize() OrchestratorConfig {
	if c.TruncationRowLimit <= 0 {
		c.TruncationRowLimit = DefaultTruncationRowLimit
	}
	if c.PerCallTimeout <= 0 {
		c.PerCallTimeout = DefaultPerCallTimeout
	}
	if c.AnswerRetries < 0 {
		c.AnswerRetries = DefaultAnswerRetries
	}
	return c
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Classifier   ClassifierConfig   `json:"classifier" yaml:"classifier"`
	Tabular      TabularConfig      `json:"tabular" yaml:"tabular"`
	Documents    DocumentsConfig    `json:"documents" yaml:"documents"`
	Summary      SummaryConfig      `json:"summary" yaml:"summary"`
	Orchestrator OrchestratorConfig `json:"orchestrator" yaml:"orchestrator"`
}
