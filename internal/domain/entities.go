package domain

import "strings"

// NotAvailable is the provider's placeholder for any missing field
const NotAvailable = "N/A"

// NoPoster is the poster value of a title without an image
const NoPoster = NotAvailable

// Kind distinguishes provider title types
type Kind string

const (
	KindAny     Kind = ""
	KindMovie   Kind = "movie"
	KindSeries  Kind = "series"
	KindEpisode Kind = "episode"
)

// Kinds lists the selectable kinds in display order, "any" first
var Kinds = []Kind{KindAny, KindMovie, KindSeries, KindEpisode}

// Label returns a human-readable name for the kind
func (k Kind) Label() string {
	switch k {
	case KindMovie:
		return "Movies"
	case KindSeries:
		return "TV Series"
	case KindEpisode:
		return "TV Episodes"
	default:
		return "All"
	}
}

// Next returns the kind after k in Kinds, wrapping around
func (k Kind) Next() Kind {
	for i, kind := range Kinds {
		if kind == k {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return KindAny
}

// Summary is the minimal record shown in result lists
type Summary struct {
	Title  string `json:"title"`
	Year   string `json:"year"`
	ID     string `json:"id"` // IMDb identifier, unique per provider
	Kind   Kind   `json:"kind"`
	Poster string `json:"poster"` // URL or NoPoster
}

// HasPoster returns true if the summary carries a usable poster URL
func (s Summary) HasPoster() bool {
	return s.Poster != "" && s.Poster != NoPoster
}

// Detail is the full record shown on a detail page
type Detail struct {
	Summary
	Runtime  string `json:"runtime"`
	Genre    string `json:"genre"`
	Director string `json:"director"`
	Actors   string `json:"actors"`
	Plot     string `json:"plot"`
	Rating   string `json:"rating"`
}

// ResultSet is one page of search results
type ResultSet struct {
	Items        []Summary
	TotalResults int
}

// SearchRequest is a single provider search call
type SearchRequest struct {
	Query string
	Year  string
	Type  Kind
	Page  int
}

// Query holds the user-editable search parameters
type Query struct {
	Search string
	Year   string
	Type   Kind
	Page   int
}

// Request converts the query into the request that is sent to the provider.
// Search and year are trimmed; page is never below 1.
func (q Query) Request() SearchRequest {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return SearchRequest{
		Query: strings.TrimSpace(q.Search),
		Year:  strings.TrimSpace(q.Year),
		Type:  q.Type,
		Page:  page,
	}
}

// Status is the process-wide request status
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusFailed
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}
