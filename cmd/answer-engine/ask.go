// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question",
	Long: `Ask classifies the question, queries the tabular store and/or the document
index as needed, and prints the answer. Use --debug to see the routing
decision and per-source status alongside the answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	log, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()
	eng, err := newEngine(ctx, engineConfig(), log)
	if err != nil {
		return err
	}
	defer eng.Close()

	res, err := eng.router.Answer(ctx, question, nil)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println(res.AnswerText)

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		printDebug(os.Stderr, res)
	}
	return nil
}

// printDebug writes the routing summary of a run.
func printDebug(w *os.File, res *types.OrchestrationResult) {
	fmt.Fprintf(w, "\nintent: %s  run: %s  elapsed: %s\n", res.Intent, res.RunID, formatElapsed(res.Elapsed))
	for _, f := range res.Fragments {
		line := fmt.Sprintf("  %s: %s", f.Source, f.Status)
		if f.Source == types.SourceTabular && f.Status == types.StatusOK {
			line += fmt.Sprintf(" (%d rows)", f.RowCount)
		}
		if f.Err != "" {
			line += " - " + f.Err
		}
		fmt.Fprintln(w, line)
	}
	if res.Truncated {
		fmt.Fprintln(w, "  tabular rows were truncated before merging")
	}
}

func init() {
	askCmd.Flags().Bool("debug", false, "print intent and per-source status to stderr")
	askCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(askCmd)
}
