// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app drives the interactive menu loop wiring user input to the
// catalog search client and the library store.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmewada/bookshelf/internal/library"
	"github.com/rmewada/bookshelf/pkg/types"
)

// Prompter reads one line of user input. The production implementation
// wraps a line editor; tests drive the app with a scripted reader. Prompt
// returns io.EOF when the input stream ends, which the app treats as exit.
type Prompter interface {
	Prompt(label string) (string, error)
	AppendHistory(line string)
}

// SearchFunc performs one catalog search for the app.
type SearchFunc func(ctx context.Context, query string) ([]types.Book, error)

// RecordFunc logs a completed search. May be nil; failures are warnings.
type RecordFunc func(ctx context.Context, query string, results int) error

// App holds the orchestrator state: the in-memory ordered collection and
// its collaborators. The collection is owned here and passed to the store
// on every save.
type App struct {
	store  *library.Store
	search SearchFunc
	record RecordFunc
	prompt Prompter
	out    io.Writer

	books []types.Book
}

// New returns an app wired to the given collaborators.
func New(store *library.Store, search SearchFunc, record RecordFunc, prompt Prompter, out io.Writer) *App {
	return &App{
		store:  store,
		search: search,
		record: record,
		prompt: prompt,
		out:    out,
	}
}

// Books returns the in-memory collection.
func (a *App) Books() []types.Book {
	return a.books
}

// Run loads the library and enters the menu loop. A corrupt store at
// startup is reported and the app continues with an empty collection.
// Run returns nil when the user exits or the input stream ends.
func (a *App) Run(ctx context.Context) error {
	books, err := a.store.Load()
	if err != nil {
		fmt.Fprintf(a.out, "CRITICAL FILE ERROR: cannot load library: %v\n", err)
		fmt.Fprintln(a.out, "Continuing with an empty library.")
		books = []types.Book{}
	} else {
		fmt.Fprintf(a.out, "Startup: loaded %d book(s) from %s.\n", len(books), a.store.Path())
	}
	a.books = books

	for {
		choice, err := a.mainMenu()
		if err != nil {
			return quietEOF(err)
		}

		switch choice {
		case "1":
			if err := a.handleSearch(ctx); err != nil {
				return quietEOF(err)
			}
		case "2":
			a.handleViewLibrary()
		case "3":
			fmt.Fprintln(a.out, "Exiting. Thanks for using bookshelf!")
			return nil
		default:
			fmt.Fprintf(a.out, "%q is not a valid choice. Please select 1, 2, or 3.\n", choice)
		}
	}
}

func (a *App) mainMenu() (string, error) {
	fmt.Fprintln(a.out, "\n==================================")
	fmt.Fprintln(a.out, "Book Search & Library App")
	fmt.Fprintln(a.out, "==================================")
	fmt.Fprintln(a.out, "1. Search books (remote catalog)")
	fmt.Fprintln(a.out, "2. View saved library")
	fmt.Fprintln(a.out, "3. Exit")

	choice, err := a.prompt.Prompt("Enter your choice: ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(choice), nil
}

// handleSearch prompts for a query, runs the search, and on success hands
// the results to the save-selection sub-loop.
func (a *App) handleSearch(ctx context.Context) error {
	query, err := a.prompt.Prompt("Enter search keyword (title/author): ")
	if err != nil {
		return err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		fmt.Fprintln(a.out, "Search query cannot be empty. Returning to menu.")
		return nil
	}
	a.prompt.AppendHistory(query)

	fmt.Fprintf(a.out, "\nSearching catalog for %q...\n", query)
	results, err := a.search(ctx, query)
	if err != nil {
		fmt.Fprintf(a.out, "\nSEARCH FAILED: %v\n", err)
		return nil
	}

	if a.record != nil {
		if err := a.record(ctx, query, len(results)); err != nil {
			fmt.Fprintf(a.out, "warning: could not record search history: %v\n", err)
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(a.out, "Search finished. No books found.")
		return nil
	}

	a.displayResults(results)
	return a.handleSaveSelection(results)
}

func (a *App) displayResults(results []types.Book) {
	fmt.Fprintln(a.out, "\n--- Search Results ---")
	for i, b := range results {
		fmt.Fprintf(a.out, "[%d]\n%s\n----------------------\n", i+1, b.Details())
	}
}

// handleSaveSelection lets the user pick one result to append to the
// library and persist. Out-of-range or non-numeric input reprompts
// without touching the library or the store.
func (a *App) handleSaveSelection(results []types.Book) error {
	for {
		selection, err := a.prompt.Prompt("Enter book number to save, or 'n' to cancel: ")
		if err != nil {
			return err
		}
		selection = strings.ToLower(strings.TrimSpace(selection))
		if selection == "n" {
			return nil
		}

		index, err := strconv.Atoi(selection)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid input. Please enter a number or 'n'.")
			continue
		}
		if index < 1 || index > len(results) {
			fmt.Fprintln(a.out, "Invalid selection number. Must be one of the options listed.")
			continue
		}

		book := results[index-1]
		a.books = append(a.books, book)
		if err := a.store.Save(a.books); err != nil {
			fmt.Fprintf(a.out, "FATAL SAVE ERROR: could not save the library after adding the book: %v\n", err)
			return nil
		}
		fmt.Fprintf(a.out, "\nSUCCESS: %q added and library saved.\n", book.Title)
		return nil
	}
}

// handleViewLibrary is a pure read of the in-memory collection.
func (a *App) handleViewLibrary() {
	fmt.Fprintln(a.out, "\n--- Your Saved Library ---")
	if len(a.books) == 0 {
		fmt.Fprintln(a.out, "Your library is currently empty. Try searching for some books!")
		return
	}
	for i, b := range a.books {
		fmt.Fprintf(a.out, "[%d] %s\n", i+1, b.Label())
	}
}

// quietEOF converts an exhausted input stream into a normal exit.
func quietEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
