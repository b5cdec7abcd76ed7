package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bookshelf/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for remote catalog searches.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to return (default 8).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableGoogleBooks controls whether the Google Books backend is used.
	EnableGoogleBooks bool `json:"enable_google_books" yaml:"enable_google_books"`

	// EnableOpenLibrary controls whether the Open Library backend is used.
	EnableOpenLibrary bool `json:"enable_open_library" yaml:"enable_open_library"`

	// GoogleBooksAPIKey is an optional API key for higher quota.
	GoogleBooksAPIKey string `json:"google_books_api_key,omitempty" yaml:"google_books_api_key,omitempty"`
}

// LibraryConfig holds settings for the on-disk library store.
type LibraryConfig struct {
	// Path is the location of the library JSON document (default "my_library.json").
	Path string `json:"path" yaml:"path"`
}

// HistoryConfig holds settings for the search-history log.
type HistoryConfig struct {
	// Path is the location of the SQLite history database (default "bookshelf.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default number of history entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Library LibraryConfig `json:"library" yaml:"library"`
	History HistoryConfig `json:"history" yaml:"history"`
}
