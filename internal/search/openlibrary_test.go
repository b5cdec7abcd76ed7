// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleOpenLibraryJSON = `{
  "numFound": 2,
  "docs": [
    {
      "title": "Dune",
      "author_name": ["Frank Herbert"],
      "publisher": ["Chilton Books", "Ace Books"],
      "isbn": ["0441172717", "9780441172719"]
    },
    {
      "title": "",
      "author_name": [],
      "publisher": [],
      "isbn": []
    }
  ]
}`

func openLibraryTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func withOpenLibraryBase(t *testing.T, url string) {
	t.Helper()
	old := openLibraryAPIBase
	openLibraryAPIBase = url
	t.Cleanup(func() { openLibraryAPIBase = old })
}

func TestOpenLibraryBackendSearch(t *testing.T) {
	ts := openLibraryTestServer(http.StatusOK, sampleOpenLibraryJSON)
	defer ts.Close()
	withOpenLibraryBase(t, ts.URL)

	b := &OpenLibraryBackend{Client: ts.Client()}
	books, err := b.Search(context.Background(), "dune", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("len(books) = %d, want 2", len(books))
	}

	b0 := books[0]
	if b0.Title != "Dune" || b0.Author != "Frank Herbert" {
		t.Errorf("book = %+v", b0)
	}
	// First publisher taken, thirteen-digit ISBN preferred.
	if b0.Publisher != "Chilton Books" {
		t.Errorf("Publisher = %q", b0.Publisher)
	}
	if b0.ISBN != "9780441172719" {
		t.Errorf("ISBN = %q, want the ISBN-13", b0.ISBN)
	}

	b1 := books[1]
	if b1.Title != PlaceholderTitle || b1.Author != PlaceholderAuthor {
		t.Errorf("placeholders not applied: %+v", b1)
	}
}

func TestOpenLibraryBackendQueryParameters(t *testing.T) {
	var gotQuery, gotLimit string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"numFound": 0, "docs": []}`)
	}))
	defer ts.Close()
	withOpenLibraryBase(t, ts.URL)

	b := &OpenLibraryBackend{Client: ts.Client()}
	if _, err := b.Search(context.Background(), "dune", testCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "dune" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotLimit != "8" {
		t.Errorf("limit = %q, want 8", gotLimit)
	}
}

func TestOpenLibraryBackendHTTPNon200(t *testing.T) {
	ts := openLibraryTestServer(http.StatusServiceUnavailable, "")
	defer ts.Close()
	withOpenLibraryBase(t, ts.URL)

	b := &OpenLibraryBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "dune", testCfg())
	if err == nil || !strings.Contains(err.Error(), "HTTP 503") {
		t.Errorf("err = %v, want HTTP 503", err)
	}
}

func TestOpenLibraryBackendMalformedJSON(t *testing.T) {
	ts := openLibraryTestServer(http.StatusOK, `<html>not json</html>`)
	defer ts.Close()
	withOpenLibraryBase(t, ts.URL)

	b := &OpenLibraryBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "dune", testCfg())
	if err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("err = %v, want parsing error", err)
	}
}

func TestPickISBN(t *testing.T) {
	tests := []struct {
		name  string
		isbns []string
		want  string
	}{
		{"empty list", nil, ""},
		{"prefers thirteen digits", []string{"0441172717", "9780441172719"}, "9780441172719"},
		{"falls back to first", []string{"0441172717", "0143111582"}, "0441172717"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickISBN(tt.isbns); got != tt.want {
				t.Errorf("pickISBN() = %q, want %q", got, tt.want)
			}
		})
	}
}
