// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bookshelf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmewada/bookshelf/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the bookshelf CLI. Running it with no
// subcommand starts the interactive shell.
var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Search remote book catalogs and keep a local library",
	Long: `bookshelf searches remote book catalogs (Google Books, optionally Open
Library) and saves selected results to a local JSON library file.

Run without a subcommand for the interactive menu, or use the search,
library, and history subcommands directly.`,
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
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle (runShell -> libraryConfig -> rootCmd).
	rootCmd.RunE = runShell

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bookshelf.yaml or ~/.config/bookshelf/config.yaml)")
	rootCmd.PersistentFlags().String("library", "", "library JSON file (default: my_library.json)")
	rootCmd.PersistentFlags().String("history-db", "", "search-history SQLite file (default: bookshelf.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bookshelf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bookshelf"))
		}
	}

	viper.SetEnvPrefix("BOOKSHELF")
	viper.AutomaticEnv()

	viper.SetDefault("search.max_results", defaultMaxResults)
	viper.SetDefault("search.timeout", defaultTimeout)
	viper.SetDefault("search.user_agent", defaultUserAgent)
	viper.SetDefault("search.enable_google_books", true)
	viper.SetDefault("search.enable_open_library", false)
	viper.SetDefault("library.path", "my_library.json")
	viper.SetDefault("history.path", "bookshelf.db")
	viper.SetDefault("history.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
