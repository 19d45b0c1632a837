package domain

import "context"

// MetadataClient is the remote movie metadata provider.
// Both calls are one-shot: no retries and no caching.
type MetadataClient interface {
	// SearchMovies returns one page of results for a keyword search
	SearchMovies(ctx context.Context, req SearchRequest) (ResultSet, error)

	// FetchMovieDetail returns the full-plot record for one identifier
	FetchMovieDetail(ctx context.Context, id string) (Detail, error)
}

// StateObserver is notified after every store transition.
// Implementations must not block.
type StateObserver interface {
	OnStateChange()
}
