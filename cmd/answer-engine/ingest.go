// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/docs"
	"github.com/pdiddy/answer-engine/internal/tabular"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load CSV tables or documents into the local stores",
	Long: `Ingest builds the two local stores the answerers query: "tables" loads
CSV files into SQLite, "docs" chunks Markdown/plain-text files into the
FTS5 passage index. Re-running replaces previously loaded data per file.`,
}

var ingestTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Load CSV files from the data directory into SQLite",
	RunE:  runIngestTables,
}

func runIngestTables(cmd *cobra.Command, args []string) error {
	cfg := engineConfig().Tabular
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	store, err := tabular.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.IngestCSV(context.Background(), cfg.DataDir, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("%d table(s) loaded, %d failed\n", summary.Loaded, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed loading", summary.Failed)
	}
	return nil
}

var ingestDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Index Markdown and plain-text files into the passage index",
	RunE:  runIngestDocs,
}

func runIngestDocs(cmd *cobra.Command, args []string) error {
	cfg := engineConfig().Documents
	if dir, _ := cmd.Flags().GetString("docs-dir"); dir != "" {
		cfg.DocsDir = dir
	}

	store, err := docs.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.IngestDir(context.Background(), cfg.DocsDir, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("%d document(s) indexed, %d failed\n", summary.Indexed, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

func init() {
	ingestTablesCmd.Flags().String("data-dir", "", "directory of CSV files (default from config)")
	ingestDocsCmd.Flags().String("docs-dir", "", "directory of documents (default from config)")

	ingestCmd.AddCommand(ingestTablesCmd)
	ingestCmd.AddCommand(ingestDocsCmd)
	rootCmd.AddCommand(ingestCmd)
}
