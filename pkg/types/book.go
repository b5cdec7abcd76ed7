// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bookshelf CLI.
package types

import (
	"fmt"
	"strings"
)

// Book is the normalized in-memory representation of one catalog entry.
// Books carry no identity key; the saved collection is ordered and may
// contain duplicates.
type Book struct {
	// Title is the book title. Backends substitute a placeholder when the
	// source omits it, so Title is never empty.
	Title string `json:"title" yaml:"title"`

	// Author lists the authors, comma-joined when the source names several.
	// Never empty; backends substitute a placeholder for anonymous works.
	Author string `json:"author" yaml:"author"`

	// Publisher is the publisher name, when the source provides one.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// ISBN is the preferred industry identifier: an ISBN-13 when the source
	// lists one, otherwise the first identifier available.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
}

// Label returns the one-line "Title by Author" form used in library listings.
func (b Book) Label() string {
	return fmt.Sprintf("%s by %s", b.Title, b.Author)
}

// Details returns the multi-line form shown for search results. Optional
// fields are omitted when empty.
func (b Book) Details() string {
	lines := []string{
		"Title: " + b.Title,
		"Author: " + b.Author,
	}
	if b.Publisher != "" {
		lines = append(lines, "Publisher: "+b.Publisher)
	}
	if b.ISBN != "" {
		lines = append(lines, "ISBN: "+b.ISBN)
	}
	return strings.Join(lines, "\n")
}
