// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rmewada/bookshelf/internal/httputil"
	"github.com/rmewada/bookshelf/pkg/types"
)

// googleBooksAPIBase is the Google Books volumes endpoint. Declared as a
// var so tests can substitute an httptest server.
var googleBooksAPIBase = "https://www.googleapis.com/books/v1/volumes"

// googleBooksMaxPageSize is the largest maxResults value the API accepts.
const googleBooksMaxPageSize = 40

// GoogleBooksBackend queries the Google Books volumes API.
type GoogleBooksBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *GoogleBooksBackend) Name() string { return "googlebooks" }

// Search queries the Google Books API and returns normalized results.
func (b *GoogleBooksBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Google Books query")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 8
	}
	if maxResults > googleBooksMaxPageSize {
		maxResults = googleBooksMaxPageSize
	}

	params := url.Values{
		"q":          {query},
		"maxResults": {fmt.Sprintf("%d", maxResults)},
	}
	if cfg.GoogleBooksAPIKey != "" {
		params.Set("key", cfg.GoogleBooksAPIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleBooksAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Google Books API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Books API returned HTTP %d", resp.StatusCode)
	}

	var gbr googleVolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&gbr); err != nil {
		return nil, fmt.Errorf("parsing Google Books response: %w", err)
	}

	var books []types.Book
	for _, item := range gbr.Items {
		books = append(books, normalizeVolume(item.VolumeInfo))
	}
	return books, nil
}

// normalizeVolume maps one volumeInfo block onto a Book, substituting
// placeholders for missing required fields.
func normalizeVolume(v googleVolumeInfo) types.Book {
	title := v.Title
	if title == "" {
		title = PlaceholderTitle
	}

	author := strings.Join(v.Authors, ", ")
	if author == "" {
		author = PlaceholderAuthor
	}

	return types.Book{
		Title:     title,
		Author:    author,
		Publisher: v.Publisher,
		ISBN:      pickIdentifier(v.IndustryIdentifiers),
	}
}

// pickIdentifier selects the book identifier: an ISBN_13 entry when present,
// otherwise the first entry carrying a non-empty identifier value. A list
// whose entries all lack identifier values yields "".
func pickIdentifier(ids []googleIdentifier) string {
	for _, id := range ids {
		if id.Type == "ISBN_13" && id.Identifier != "" {
			return id.Identifier
		}
	}
	for _, id := range ids {
		if id.Identifier != "" {
			return id.Identifier
		}
	}
	return ""
}

// Google Books API JSON structures.
type googleVolumesResponse struct {
	TotalItems int                `json:"totalItems"`
	Items      []googleVolumeItem `json:"items"`
}

type googleVolumeItem struct {
	ID         string           `json:"id"`
	VolumeInfo googleVolumeInfo `json:"volumeInfo"`
}

type googleVolumeInfo struct {
	Title               string             `json:"title"`
	Authors             []string           `json:"authors"`
	Publisher           string             `json:"publisher"`
	PublishedDate       string             `json:"publishedDate"`
	IndustryIdentifiers []googleIdentifier `json:"industryIdentifiers"`
}

type googleIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}
