// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/transcript"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// historyWindow caps how many prior turns are replayed to the classifier.
const historyWindow = 10

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-answering session",
	Long: `Chat runs a terminal session where each question is answered with the
prior turns as context. Type "exit" or press Ctrl-D to quit.

With --log, every run is appended to a YAML transcript for later review.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
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

	logPath, _ := cmd.Flags().GetString("log")
	debug, _ := cmd.Flags().GetBool("debug")

	var history []types.Turn
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println(`Ask a question ("exit" to quit).`)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		res, err := eng.router.Answer(ctx, question, history)
		if err != nil {
			if errors.Is(err, types.ErrAllSourcesUnavailable) {
				fmt.Fprintln(os.Stderr, "No source could answer that question. Try rephrasing.")
			} else {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			continue
		}

		fmt.Println(res.AnswerText)
		if debug {
			printDebug(os.Stderr, res)
		}

		history = append(history, types.Turn{Question: question, Answer: res.AnswerText})
		if len(history) > historyWindow {
			history = history[len(history)-historyWindow:]
		}

		if logPath != "" {
			if err := transcript.Append(logPath, transcript.FromResult(res)); err != nil {
				fmt.Fprintln(os.Stderr, "warning: could not write transcript:", err)
			}
		}
	}
	return scanner.Err()
}

func init() {
	chatCmd.Flags().Bool("debug", false, "print intent and per-source status after each answer")
	chatCmd.Flags().String("log", "", "append each run to a YAML transcript at this path")

	rootCmd.AddCommand(chatCmd)
}
