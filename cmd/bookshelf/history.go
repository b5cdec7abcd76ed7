// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmewada/bookshelf/internal/history"
	"github.com/rmewada/bookshelf/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent catalog searches",
	Long: `History lists recent searches from the local SQLite log, newest first.
Searches run from the search subcommand and the interactive shell are
both recorded.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	log, err := history.Open(historyConfig())
	if err != nil {
		return err
	}
	defer log.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := log.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}

	fmt.Printf("%-20s  %-40s  %-22s  %s\n", "When", "Query", "Source", "Results")
	fmt.Println(strings.Repeat("-", 95))
	for _, e := range entries {
		fmt.Printf("%-20s  %-40s  %-22s  %d\n",
			e.SearchedAt.Local().Format("2006-01-02 15:04:05"),
			clip(e.Query, 40), e.Source, e.Results)
	}
	return nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// historyConfig resolves the history database path from the --history-db
// flag, falling back to the config file value.
func historyConfig() types.HistoryConfig {
	path, _ := rootCmd.PersistentFlags().GetString("history-db")
	if path == "" {
		path = viper.GetString("history.path")
	}
	return types.HistoryConfig{
		Path:       path,
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to list (0 = use default)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}
