// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmewada/bookshelf/internal/library"
	"github.com/rmewada/bookshelf/internal/search"
	"github.com/rmewada/bookshelf/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "View or export the saved library",
	Long: `Library reads the local JSON library file. Use subcommands to list the
saved books or export the collection to YAML or JSON.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved books",
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store := library.NewStore(libraryConfig(), os.Stderr)
	books, err := store.Load()
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(books, os.Stdout)
	}

	if len(books) == 0 {
		fmt.Println("Your library is currently empty. Try searching for some books!")
		return nil
	}
	for i, b := range books {
		fmt.Printf("[%d] %s\n", i+1, b.Label())
	}
	return nil
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved library to YAML or JSON",
	RunE:  runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store := library.NewStore(libraryConfig(), os.Stderr)

	switch format {
	case "yaml", "":
		if out == "" {
			out = "library-export.yaml"
		}
		if err := store.ExportYAML(out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "library-export.json"
		}
		if err := store.ExportJSON(out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", out)
	return nil
}

// --- shared helpers ---

// libraryConfig resolves the library file path from the --library flag,
// falling back to the config file value.
func libraryConfig() types.LibraryConfig {
	path, _ := rootCmd.PersistentFlags().GetString("library")
	if path == "" {
		path = viper.GetString("library.path")
	}
	return types.LibraryConfig{Path: path}
}

func init() {
	libraryListCmd.Flags().Bool("json", false, "output books as JSON")

	libraryExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	libraryExportCmd.Flags().String("out", "", "output file (default: library-export.<format>)")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryExportCmd)

	rootCmd.AddCommand(libraryCmd)
}
