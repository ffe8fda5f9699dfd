// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the answer-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/answer-engine/internal/secrets"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the answer-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "answer-engine",
	Short: "Route questions across tabular and document knowledge sources",
	Long: `answer-engine answers natural-language questions from two local sources:
CSV tables ingested into SQLite and a full-text passage index built from
Markdown documents. A classifier decides which source (or both) a question
needs; hybrid answers are synthesized into one response.

Use ingest to load data, ask for one-shot questions, and chat for a
multi-turn session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./answer-engine.yaml or ~/.config/answer-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log routing decisions to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("answer-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "answer-engine"))
		}
	}

	viper.SetEnvPrefix("ANSWER_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("tabular.db_path", filepath.Join("data", "tables.db"))
	viper.SetDefault("tabular.data_dir", "data")
	viper.SetDefault("documents.index_path", filepath.Join("docs", "index.db"))
	viper.SetDefault("documents.docs_dir", "docs")
	viper.SetDefault("orchestrator.truncation_row_limit", types.DefaultTruncationRowLimit)
	viper.SetDefault("orchestrator.per_call_timeout", types.DefaultPerCallTimeout)
	viper.SetDefault("orchestrator.answer_retries", types.DefaultAnswerRetries)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the stage configurations from viper and secrets.
func engineConfig() types.EngineConfig {
	ai := types.AIConfig{
		Model:  viper.GetString("model"),
		APIKey: secretDefault("anthropic-api-key", viper.GetString("api_key")),
	}

	return types.EngineConfig{
		Classifier: types.ClassifierConfig{AIConfig: ai},
		Tabular: types.TabularConfig{
			AIConfig:       ai,
			DBPath:         viper.GetString("tabular.db_path"),
			DataDir:        viper.GetString("tabular.data_dir"),
			ValueHintLimit: viper.GetInt("tabular.value_hint_limit"),
		},
		Documents: types.DocumentsConfig{
			AIConfig:    ai,
			IndexPath:   viper.GetString("documents.index_path"),
			DocsDir:     viper.GetString("documents.docs_dir"),
			MaxPassages: viper.GetInt("documents.max_passages"),
		},
		Summary: types.SummaryConfig{AIConfig: ai},
		Orchestrator: types.OrchestratorConfig{
			TruncationRowLimit: viper.GetInt("orchestrator.truncation_row_limit"),
			PerCallTimeout:     viper.GetDuration("orchestrator.per_call_timeout"),
			AnswerRetries:      viper.GetInt("orchestrator.answer_retries"),
		},
	}
}

// buildLogger returns a stderr zap logger, verbose-gated.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func formatElapsed(d time.Duration) string {
	return d.Round(10 * time.Millisecond).String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
