// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmewada/bookshelf/internal/history"
	"github.com/rmewada/bookshelf/internal/search"
	"github.com/rmewada/bookshelf/pkg/types"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultMaxResults = 8
	defaultUserAgent  = "bookshelf/0.1"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search remote book catalogs",
	Long: `Search queries the configured catalog backends (Google Books by default,
Open Library when enabled) for books matching a free-text query and prints
the normalized results. Each completed search is recorded in the local
history log.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 8)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 5s)")
	searchCmd.Flags().String("source", "", "catalog backends: google, openlibrary, or all")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("no-history", false, "do not record this search in the history log")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a search query (title or author keywords)")
	}

	cfg := searchConfig(cmd)
	backends := catalogBackends(cfg)

	books, err := search.Search(context.Background(), query, backends, cfg, os.Stderr)
	if err != nil {
		return err
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		recordSearch(query, backendNames(backends), len(books))
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(books, os.Stdout)
	}
	search.FormatTable(books, os.Stdout)
	return nil
}

// searchConfig merges flags, config file values, and loaded secrets.
func searchConfig(cmd *cobra.Command) types.SearchConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("search.max_results")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("search.timeout")
	}

	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("search.user_agent"),
		},
		MaxResults:        maxResults,
		EnableGoogleBooks: viper.GetBool("search.enable_google_books"),
		EnableOpenLibrary: viper.GetBool("search.enable_open_library"),
		GoogleBooksAPIKey: secretDefault("google-books-api-key", viper.GetString("search.google_books_api_key")),
	}

	if source, _ := cmd.Flags().GetString("source"); source != "" {
		cfg.EnableGoogleBooks = source == "google" || source == "all"
		cfg.EnableOpenLibrary = source == "openlibrary" || source == "all"
	}
	return cfg
}

// catalogBackends builds the enabled backends, in query order.
func catalogBackends(cfg types.SearchConfig) []search.Backend {
	client := &http.Client{Timeout: cfg.Timeout}

	var backends []search.Backend
	if cfg.EnableGoogleBooks {
		backends = append(backends, &search.GoogleBooksBackend{Client: client})
	}
	if cfg.EnableOpenLibrary {
		backends = append(backends, &search.OpenLibraryBackend{Client: client})
	}
	return backends
}

func backendNames(backends []search.Backend) string {
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name()
	}
	return strings.Join(names, ",")
}

// recordSearch appends to the history log. Best-effort: failures warn.
func recordSearch(query, source string, results int) {
	log, err := history.Open(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history log: %v\n", err)
		return
	}
	defer log.Close()

	if err := log.Record(context.Background(), query, source, results); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record search history: %v\n", err)
	}
}
