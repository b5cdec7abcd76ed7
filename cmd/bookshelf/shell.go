// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"os"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/rmewada/bookshelf/internal/app"
	"github.com/rmewada/bookshelf/internal/history"
	"github.com/rmewada/bookshelf/internal/library"
	"github.com/rmewada/bookshelf/internal/search"
	"github.com/rmewada/bookshelf/pkg/types"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive search-and-save menu",
	Long: `Shell starts the interactive menu: search the remote catalog, pick
results to append to the local library, and view the saved collection.
Prompts support line editing and query history.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg := searchConfig(cmd)
	backends := catalogBackends(cfg)
	store := library.NewStore(libraryConfig(), os.Stderr)

	searchFn := func(ctx context.Context, query string) ([]types.Book, error) {
		return search.Search(ctx, query, backends, cfg, os.Stderr)
	}

	// History logging is best-effort; the shell runs without it.
	var recordFn app.RecordFunc
	if log, err := history.Open(historyConfig()); err == nil {
		defer log.Close()
		recordFn = func(ctx context.Context, query string, results int) error {
			return log.Record(ctx, query, backendNames(backends), results)
		}
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	a := app.New(store, searchFn, recordFn, &linerPrompter{line: line}, os.Stdout)
	return a.Run(context.Background())
}

// linerPrompter adapts a liner.State to the app.Prompter interface.
// Ctrl-C aborts are reported as io.EOF so the menu loop exits cleanly.
type linerPrompter struct {
	line *liner.State
}

func (p *linerPrompter) Prompt(label string) (string, error) {
	s, err := p.line.Prompt(label)
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	}
	return s, err
}

func (p *linerPrompter) AppendHistory(line string) {
	p.line.AppendHistory(line)
}
